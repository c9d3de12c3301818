package entity

import (
	"fmt"
	"maps"

	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

// NewMusicPlayer creates the music entity. tracks may be nil; the music
// system loads tracks on first request.
func NewMusicPlayer(w *ecs.World, tracks map[string]component.Track, volumes map[string]float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("music player: world is nil")
	}

	state := component.MusicPlayer{
		Tracks:       make(map[string]component.Track, len(tracks)),
		TrackVolumes: make(map[string]float64, len(volumes)),
	}
	maps.Copy(state.Tracks, tracks)
	maps.Copy(state.TrackVolumes, volumes)

	ent := w.CreateEntity()
	if err := ecs.Add(w, ent, component.MusicPlayerComponent, state); err != nil {
		return 0, fmt.Errorf("music player: add component: %w", err)
	}
	return ent, nil
}
