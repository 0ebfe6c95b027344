//go:build windows

package platform

func newSoundPlayer(lookPath func(string) (string, error)) SoundPlayer {
	return &commandPlayer{
		lookPath: lookPath,
		candidates: [][]string{
			{
				"powershell",
				"-NoProfile",
				"-NonInteractive",
				"-Command",
				"[System.Media.SystemSounds]::Asterisk.Play(); Start-Sleep -Milliseconds 800",
			},
		},
	}
}
