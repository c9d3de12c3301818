package component

// Track is the part of *audio.Player the music system drives.
type Track interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
}

// MusicPlayer is the single background music entity. Tracks are opened
// lazily by name. Pending* describes the song that starts once the current
// one has faded out.
type MusicPlayer struct {
	Tracks       map[string]Track
	TrackVolumes map[string]float64

	CurrentTrack  string
	CurrentVolume float64
	CurrentLoop   bool
	CurrentPaused bool

	PendingTrack  string
	PendingVolume float64
	PendingLoop   bool
	PendingActive bool

	FadeStep float64
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()
