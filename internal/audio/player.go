// Package audio plays verse recitations through an external command.
package audio

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrNoPlayer is returned when no player command is configured.
var ErrNoPlayer = errors.New("no audio player configured")

// DefaultCommands are tried in order when no player is configured.
var DefaultCommands = []string{
	"mpv --no-video --really-quiet",
	"ffplay -nodisp -autoexit -loglevel quiet",
	"mpg123 -q",
}

// Player runs one recitation at a time; starting a new one stops the previous.
type Player struct {
	argv []string
	log  logrus.FieldLogger

	mu      sync.Mutex
	current *exec.Cmd
}

// NewPlayer returns a player for command, a program name followed by its
// arguments. The recitation URL is appended as the last argument. When
// command is empty the first of DefaultCommands found in PATH is used.
func NewPlayer(command string, log logrus.FieldLogger) *Player {
	p := &Player{log: log.WithField("component", "audio")}
	if command = strings.TrimSpace(command); command == "" {
		command = detect()
	}
	p.argv = strings.Fields(command)
	return p
}

// Available reports whether the player has a command to run.
func (p *Player) Available() bool {
	return len(p.argv) > 0
}

// Command returns the configured command line.
func (p *Player) Command() string {
	return strings.Join(p.argv, " ")
}

// Play starts playing url in the background.
func (p *Player) Play(url string) error {
	if !p.Available() {
		return ErrNoPlayer
	}
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("verse has no recitation")
	}

	p.Stop()
	cmd := exec.Command(p.argv[0], append(p.argv[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}

	p.mu.Lock()
	p.current = cmd
	p.mu.Unlock()

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		if p.current == cmd {
			p.current = nil
		}
		p.mu.Unlock()
		if err != nil {
			p.log.WithError(err).WithField("url", url).Debug("player exited")
		}
	}()
	return nil
}

// Stop kills the running recitation, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	cmd := p.current
	p.current = nil
	p.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

// Playing reports whether a recitation is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

func detect() string {
	for _, candidate := range DefaultCommands {
		name := strings.Fields(candidate)[0]
		if _, err := exec.LookPath(name); err == nil {
			return candidate
		}
	}
	return ""
}
