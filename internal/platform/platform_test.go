package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppSlug(t *testing.T) {
	assert.Equal(t, "pomodoro", appSlug(""))
	assert.Equal(t, "focus-timer", appSlug("  Focus Timer "))
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("Pomodoro")
	assert.Equal(t, first, portFromName("Pomodoro"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestSingleInstanceActivation(t *testing.T) {
	name := "pomodoro-test-" + time.Now().Format("150405.000000000")
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() { activated <- struct{}{} })
	require.NoError(t, ActivateRunningInstance(name))

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("activation was not delivered")
	}
}

func TestCommandPlayerFallsThrough(t *testing.T) {
	player := &commandPlayer{
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		candidates: [][]string{
			{"missing-player"},
			{"another-missing-player", "alert.wav"},
		},
	}
	assert.ErrorIs(t, player.Play(context.Background()), ErrSoundUnsupported)
}

func TestUnsupportedIdleProvider(t *testing.T) {
	_, err := unsupportedIdleProvider{}.IdleDuration()
	assert.ErrorIs(t, err, ErrIdleUnsupported)
}
