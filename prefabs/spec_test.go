package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	SetDiskRoot("")
	defer SetDiskRoot("prefabs")

	scene, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if scene.Ground.Heightmap == "" || scene.Ground.Size <= 0 {
		t.Fatalf("ground spec incomplete: %+v", scene.Ground)
	}
	if scene.Trees.Count <= 0 || scene.Trees.Mesh.Name == "" {
		t.Fatalf("tree spec incomplete: %+v", scene.Trees)
	}
	if scene.Sky.Top.Or(nil) == nil {
		t.Fatalf("sky color not parsed")
	}

	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if player.Speed <= 0 || player.DashFactor <= 1 {
		t.Fatalf("player spec incomplete: %+v", player)
	}

	if _, err := LoadScript("tutorial.tengo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("speed: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetDiskRoot(dir)
	defer SetDiskRoot("prefabs")

	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if player.Speed != 42 {
		t.Fatalf("expected disk override, got speed %v", player.Speed)
	}
	if _, ok := ModTime("prefabs/player.yaml"); !ok {
		t.Fatalf("expected mod time for override")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{`"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`"#fff"`, color.NRGBA{}, true},
		{`"#zzzzzz"`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		var v struct {
			C YAMLColor `yaml:"c"`
		}
		err := yaml.Unmarshal([]byte("c: "+c.in), &v)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if v.C.Color != c.want {
			t.Errorf("%s: got %v, want %v", c.in, v.C.Color, c.want)
		}
	}

	var missing *YAMLColor
	if missing.Or(color.White) != color.White {
		t.Fatalf("nil color should fall back")
	}
}

func TestCleanPaths(t *testing.T) {
	if got := cleanScriptPath("prefabs/scripts/tutorial.tengo"); got != "scripts/tutorial.tengo" {
		t.Fatalf("cleanScriptPath = %q", got)
	}
	if got := cleanPrefabPath("prefabs/scene.yaml"); got != "scene.yaml" {
		t.Fatalf("cleanPrefabPath = %q", got)
	}
}
