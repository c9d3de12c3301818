package system

import (
	"fmt"
	"strings"

	"github.com/milk9111/nightwalk/assets"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"go.uber.org/zap"
)

const (
	defaultMusicVolume     = 1.0
	defaultMusicFadeFrames = 30
)

// TrackLoader opens a named track.
type TrackLoader func(track string) (component.Track, error)

type MusicSystem struct {
	load TrackLoader
}

// NewMusicSystem loads tracks through load, or from the embedded assets when
// load is nil.
func NewMusicSystem(load TrackLoader) *MusicSystem {
	if load == nil {
		load = loadEmbeddedTrack
	}
	return &MusicSystem{load: load}
}

func loadEmbeddedTrack(track string) (component.Track, error) {
	return assets.LoadAudioPlayer(track)
}

func RequestMusic(w *ecs.World, track string) {
	RequestMusicWithOptions(w, component.MusicRequest{Track: track, Loop: true, FadeOutFrames: defaultMusicFadeFrames})
}

func RequestMusicWithOptions(w *ecs.World, req component.MusicRequest) {
	if w == nil {
		return
	}
	ent := w.CreateEntity()
	_ = ecs.Add(w, ent, component.MusicRequestComponent, req)
}

func StopMusic(w *ecs.World) {
	RequestMusicWithOptions(w, component.MusicRequest{FadeOutFrames: defaultMusicFadeFrames})
}

// PauseMusic holds the current song at its position until it is requested
// again.
func PauseMusic(w *ecs.World) {
	RequestMusicWithOptions(w, component.MusicRequest{Pause: true})
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requestEntities := m.consumeLatestRequest(w)
	for _, ent := range requestEntities {
		w.DestroyEntity(ent)
	}

	ent, ok := ecs.First(w, component.MusicPlayerComponent)
	if !ok {
		return
	}
	ecs.Update(w, ent, component.MusicPlayerComponent, func(player *component.MusicPlayer) {
		m.update(player, latest)
	})
}

func (m *MusicSystem) update(player *component.MusicPlayer, latest *component.MusicRequest) {
	if player.Tracks == nil {
		player.Tracks = make(map[string]component.Track)
	}
	if player.TrackVolumes == nil {
		player.TrackVolumes = make(map[string]float64)
	}

	if latest != nil {
		m.applyRequest(player, *latest)
	}

	if player.PendingActive {
		m.updateTransition(player)
		return
	}

	current := m.currentTrack(player)
	if current != nil && !player.CurrentPaused && !current.IsPlaying() && player.CurrentLoop {
		_ = current.Rewind()
		current.SetVolume(player.CurrentVolume)
		current.Play()
	}
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var latest *component.MusicRequest
	requestEntities := make([]ecs.Entity, 0)

	ecs.ForEach(w, component.MusicRequestComponent, func(ent ecs.Entity, req *component.MusicRequest) {
		requestEntities = append(requestEntities, ent)
		copy := *req
		latest = &copy
	})

	return latest, requestEntities
}

func (m *MusicSystem) applyRequest(player *component.MusicPlayer, req component.MusicRequest) {
	if req.Pause {
		if current := m.currentTrack(player); current != nil && !player.PendingActive {
			current.Pause()
			player.CurrentPaused = true
		}
		return
	}

	track := strings.TrimSpace(req.Track)
	volume := req.Volume
	if volume <= 0 {
		if v, ok := player.TrackVolumes[track]; ok && v > 0 {
			volume = v
		} else {
			volume = defaultMusicVolume
		}
	}
	if volume > 1 {
		volume = 1
	}
	fadeFrames := req.FadeOutFrames
	if fadeFrames <= 0 {
		fadeFrames = defaultMusicFadeFrames
	}

	current := m.currentTrack(player)
	if track != "" && !player.PendingActive && player.CurrentTrack == track && current != nil {
		player.CurrentVolume = volume
		player.CurrentLoop = req.Loop
		current.SetVolume(volume)
		if !current.IsPlaying() {
			if !player.CurrentPaused {
				_ = current.Rewind()
			}
			current.Play()
		}
		player.CurrentPaused = false
		return
	}

	player.PendingTrack = track
	player.PendingVolume = volume
	player.PendingLoop = req.Loop
	player.PendingActive = true
	if current == nil || player.CurrentPaused {
		m.stopCurrent(player)
		m.switchToPending(player)
		return
	}

	player.FadeStep = player.CurrentVolume / float64(fadeFrames)
	if player.FadeStep <= 0 {
		player.FadeStep = 1
	}
}

func (m *MusicSystem) updateTransition(player *component.MusicPlayer) {
	current := m.currentTrack(player)
	if current == nil {
		m.switchToPending(player)
		return
	}

	player.CurrentVolume -= player.FadeStep
	if player.CurrentVolume > 0 {
		current.SetVolume(player.CurrentVolume)
		return
	}

	m.stopCurrent(player)
	m.switchToPending(player)
}

func (m *MusicSystem) stopCurrent(player *component.MusicPlayer) {
	if current := m.currentTrack(player); current != nil {
		current.SetVolume(0)
		current.Pause()
		_ = current.Rewind()
	}
	player.CurrentTrack = ""
	player.CurrentVolume = 0
	player.CurrentLoop = false
	player.CurrentPaused = false
}

func (m *MusicSystem) switchToPending(player *component.MusicPlayer) {
	if !player.PendingActive {
		return
	}

	reqTrack := strings.TrimSpace(player.PendingTrack)
	reqVolume := player.PendingVolume
	reqLoop := player.PendingLoop

	player.PendingTrack = ""
	player.PendingVolume = 0
	player.PendingLoop = false
	player.PendingActive = false
	player.FadeStep = 0

	if reqTrack == "" {
		return
	}

	track, err := m.trackFor(player, reqTrack)
	if err != nil {
		zap.S().Warnw("music: load track", "track", reqTrack, "error", err)
		return
	}

	player.CurrentTrack = reqTrack
	player.CurrentVolume = reqVolume
	player.CurrentLoop = reqLoop
	player.CurrentPaused = false
	_ = track.Rewind()
	track.SetVolume(player.CurrentVolume)
	track.Play()
}

func (m *MusicSystem) currentTrack(player *component.MusicPlayer) component.Track {
	if strings.TrimSpace(player.CurrentTrack) == "" || player.Tracks == nil {
		return nil
	}
	track, ok := player.Tracks[player.CurrentTrack]
	if !ok {
		return nil
	}
	return track
}

func (m *MusicSystem) trackFor(player *component.MusicPlayer, name string) (component.Track, error) {
	if existing, ok := player.Tracks[name]; ok && existing != nil {
		return existing, nil
	}

	track, err := m.load(name)
	if err != nil {
		return nil, fmt.Errorf("music: open %q: %w", name, err)
	}
	player.Tracks[name] = track
	return track, nil
}
