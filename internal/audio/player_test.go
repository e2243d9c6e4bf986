package audio

import (
	"errors"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPlayerCommandParsing(t *testing.T) {
	p := NewPlayer("  mpv --no-video  ", discardLogger())
	assert.True(t, p.Available())
	assert.Equal(t, "mpv --no-video", p.Command())
}

func TestPlayWithoutCommand(t *testing.T) {
	p := &Player{log: discardLogger()}
	err := p.Play("https://cdn.example/1.mp3")
	assert.True(t, errors.Is(err, ErrNoPlayer))
}

func TestPlayRequiresURL(t *testing.T) {
	p := NewPlayer("true", discardLogger())
	assert.Error(t, p.Play(" "))
}

func TestPlayMissingBinary(t *testing.T) {
	p := NewPlayer("huroof-no-such-player", discardLogger())
	assert.Error(t, p.Play("https://cdn.example/1.mp3"))
	assert.False(t, p.Playing())
}

func TestPlayAndStop(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	p := NewPlayer("sleep", discardLogger())
	// sleep takes the URL slot as its duration.
	require.NoError(t, p.Play("30"))
	assert.True(t, p.Playing())

	p.Stop()
	assert.False(t, p.Playing())
}

func TestPlayerForgetsFinishedProcess(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	p := NewPlayer("true", discardLogger())
	require.NoError(t, p.Play("https://cdn.example/1.mp3"))
	assert.Eventually(t, func() bool { return !p.Playing() }, 2*time.Second, 10*time.Millisecond)
}
