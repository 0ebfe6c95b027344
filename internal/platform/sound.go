package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrSoundUnsupported indicates no sound player is available on this system.
var ErrSoundUnsupported = errors.New("sound playback unsupported")

// SoundPlayer plays the alert sound. Play blocks until playback ends.
type SoundPlayer interface {
	Play(ctx context.Context) error
}

// NewSoundPlayer returns the player for the current OS.
func NewSoundPlayer() SoundPlayer {
	return newSoundPlayer(exec.LookPath)
}

// commandPlayer runs the first candidate command found on PATH.
type commandPlayer struct {
	candidates [][]string
	lookPath   func(string) (string, error)
}

func (player *commandPlayer) Play(ctx context.Context) error {
	for _, candidate := range player.candidates {
		path, err := player.lookPath(candidate[0])
		if err != nil {
			continue
		}
		output, err := exec.CommandContext(ctx, path, candidate[1:]...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("play sound with %s: %w: %s", candidate[0], err, strings.TrimSpace(string(output)))
		}
		return nil
	}
	return ErrSoundUnsupported
}
