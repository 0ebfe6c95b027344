package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	tests := map[int64]string{
		1500:  "25:00",
		59:    "0:59",
		0:     "0:00",
		-5:    "-0:05",
		-61:   "-1:01",
		6000:  "100:00",
		-3600: "-60:00",
	}
	for seconds, want := range tests {
		assert.Equal(t, want, FormatSeconds(seconds), "seconds=%d", seconds)
	}
}

func TestFormatTick(t *testing.T) {
	remaining := TickResult{Kind: TickRemaining, Remaining: 754*time.Second + 900*time.Millisecond}
	overrun := TickResult{Kind: TickOverrun, Overrun: 5*time.Second + 400*time.Millisecond}

	assert.Equal(t, "12:34", FormatTick(remaining))
	assert.Equal(t, "-0:05", FormatTick(overrun))
}

func TestFormatStatus(t *testing.T) {
	result := TickResult{Kind: TickRemaining, Phase: PhaseWorking, Round: 2, Remaining: 754 * time.Second}
	assert.Equal(t, "Work · round 2 · 12:34", FormatStatus(result))
}
