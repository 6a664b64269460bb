package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLauncherFlags(t *testing.T) {
	l := newLauncher(Config{Headless: true})

	assert.True(t, l.Has("disable-gpu"))
	assert.True(t, l.Has("single-process"))
	assert.True(t, l.Has("headless"))
	assert.False(t, l.Has("proxy-server"))
}

func TestNewLauncherOptions(t *testing.T) {
	l := newLauncher(Config{
		Headless:  false,
		NoSandbox: true,
		ProxyURL:  "http://127.0.0.1:7890",
	})

	assert.False(t, l.Has("headless"))
	assert.True(t, l.Has("no-sandbox"))
	assert.Equal(t, "http://127.0.0.1:7890", l.Get("proxy-server"))
}

func TestSessionCloseWithoutPage(t *testing.T) {
	assert.NoError(t, (&Session{}).Close())
}
