package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformName(t *testing.T) {
	assert.Equal(t, "macos", platformName("darwin"))
	assert.Equal(t, "ios", platformName("ios"))
	assert.Equal(t, "linux", platformName("linux"))
	assert.Equal(t, "windows", platformName("windows"))
	assert.Equal(t, "unknown", platformName("plan9"))
}
