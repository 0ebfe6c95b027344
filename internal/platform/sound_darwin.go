//go:build darwin

package platform

func newSoundPlayer(lookPath func(string) (string, error)) SoundPlayer {
	return &commandPlayer{
		lookPath: lookPath,
		candidates: [][]string{
			{"afplay", "/System/Library/Sounds/Glass.aiff"},
		},
	}
}
