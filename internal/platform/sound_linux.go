//go:build linux

package platform

func newSoundPlayer(lookPath func(string) (string, error)) SoundPlayer {
	return &commandPlayer{
		lookPath: lookPath,
		candidates: [][]string{
			{"canberra-gtk-play", "--id", "complete", "--description", "Pomodoro"},
			{"paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga"},
			{"aplay", "-q", "/usr/share/sounds/alsa/Front_Center.wav"},
		},
	}
}
