package component

// MusicRequest asks the music system to change what is playing. Requests
// live on their own entity for one frame and the newest one wins.
//
// A Track fades out whatever is playing over FadeOutFrames, then starts. An
// empty Track only fades out. Pause holds the song at its position until the
// same track is requested again, which resumes it without rewinding.
type MusicRequest struct {
	Track  string
	Volume float64
	Loop   bool
	Pause  bool

	FadeOutFrames int
}

var MusicRequestComponent = NewComponent[MusicRequest]()
