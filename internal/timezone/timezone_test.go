package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
	assert.False(t, IsValid(""))
}

func TestDateInCrossesMidnight(t *testing.T) {
	at := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", DateIn(at, "America/Sao_Paulo"))
	assert.Equal(t, "2026-03-10", DateIn(at, "Europe/Lisbon"))
}
