package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "go    ", PadRight("go", 6))
	assert.Equal(t, "exact", PadRight("exact", 5))

	// too-long input is truncated to the target width
	assert.Equal(t, "lon...", PadRight("long-name", 6))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a-very-...", Truncate("a-very-long-name", 10))
}
