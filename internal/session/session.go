// Package session implements the letter-by-letter practice state machine for
// a single verse.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"

	"github.com/huroofhub/huroof/internal/model"
)

const (
	// DefaultSettleDelay is how long a finished verse stays on screen before
	// completion is reported.
	DefaultSettleDelay = 1200 * time.Millisecond
	// DefaultSkipDelay is the settle delay after a skip.
	DefaultSkipDelay = 300 * time.Millisecond
)

// State is the progression state of a session.
type State int

const (
	// StateLoading means no verse text is loaded.
	StateLoading State = iota
	// StateInProgress means some runes of the verse are still expected.
	StateInProgress
	// StateCompleted means every rune has been accepted or the verse was skipped.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Outcome describes what Accept did with a selection.
type Outcome int

const (
	// OutcomeInvalid means the selection is not in the current deck, or there
	// is no deck. Nothing changed.
	OutcomeInvalid Outcome = iota
	// OutcomeIncorrect means the selection is in the deck but is not the
	// expected rune. Nothing changed; the learner may retry.
	OutcomeIncorrect
	// OutcomeCorrect means the session advanced by one rune.
	OutcomeCorrect
	// OutcomeCompleted means the last rune was accepted.
	OutcomeCompleted
)

// OptionGenerator builds the candidate deck for the next rune.
type OptionGenerator interface {
	Options(correct rune, typed string) []rune
}

// CompletionFunc receives the finished verse. It is called from a timer
// goroutine, never from inside a Session method.
type CompletionFunc func(model.Verse)

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to schedule completion notifications.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithDelays sets the settle delays after completion and after a skip.
func WithDelays(settle, skip time.Duration) Option {
	return func(s *Session) {
		s.settleDelay = settle
		s.skipDelay = skip
	}
}

// WithCompletionFunc registers the completion callback.
func WithCompletionFunc(fn CompletionFunc) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

// Session tracks progress through one verse. It is owned by a single caller;
// only the pending completion timer is shared with another goroutine.
type Session struct {
	gen         OptionGenerator
	clock       clockwork.Clock
	settleDelay time.Duration
	skipDelay   time.Duration
	onComplete  CompletionFunc

	verse    model.Verse
	target   []rune
	position int
	options  []rune

	mu    sync.Mutex
	epoch uint64
	timer clockwork.Timer
}

// New returns a session in StateLoading.
func New(gen OptionGenerator, opts ...Option) *Session {
	s := &Session{
		gen:         gen,
		clock:       clockwork.NewRealClock(),
		settleDelay: DefaultSettleDelay,
		skipDelay:   DefaultSkipDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PrepareText strips a leading byte-order mark and surrounding whitespace.
// Mark order is kept as served, so a shadda is picked before its vowel.
func PrepareText(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.TrimSpace(text)
}

// LoadVerse starts practicing v from the first rune and drops any pending
// completion notification.
func (s *Session) LoadVerse(v model.Verse) {
	s.cancelPending()
	s.verse = v
	s.target = []rune(PrepareText(v.Text))
	s.position = 0
	s.refreshOptions()
}

// Restart practices the current verse again from the first rune.
func (s *Session) Restart() {
	s.LoadVerse(s.verse)
}

// Accept applies a selection from the current deck.
func (s *Session) Accept(r rune) Outcome {
	if len(s.options) == 0 || !lo.Contains(s.options, r) {
		return OutcomeInvalid
	}
	if r != s.target[s.position] {
		return OutcomeIncorrect
	}
	s.position++
	if s.position < len(s.target) {
		s.refreshOptions()
		return OutcomeCorrect
	}
	s.options = nil
	s.schedule(s.settleDelay)
	return OutcomeCompleted
}

// Skip fills in the rest of the verse. It reports false when there is nothing
// in progress to skip.
func (s *Session) Skip() bool {
	if s.State() != StateInProgress {
		return false
	}
	s.position = len(s.target)
	s.options = nil
	s.schedule(s.skipDelay)
	return true
}

// Close drops a pending completion notification. Call it when the owner of
// the session goes away.
func (s *Session) Close() {
	s.cancelPending()
}

// State returns the progression state.
func (s *Session) State() State {
	switch {
	case len(s.target) == 0:
		return StateLoading
	case s.position >= len(s.target):
		return StateCompleted
	default:
		return StateInProgress
	}
}

// Complete reports whether every rune of a non-empty verse has been accepted.
func (s *Session) Complete() bool {
	return s.State() == StateCompleted
}

// Verse returns the verse being practiced.
func (s *Session) Verse() model.Verse {
	return s.verse
}

// Target returns the prepared verse text.
func (s *Session) Target() string {
	return string(s.target)
}

// Len returns the number of runes in the prepared verse text.
func (s *Session) Len() int {
	return len(s.target)
}

// Position returns the number of accepted runes.
func (s *Session) Position() int {
	return s.position
}

// TypedSoFar returns the accepted prefix of the verse.
func (s *Session) TypedSoFar() string {
	return string(s.target[:s.position])
}

// Expected returns the rune the learner has to pick next.
func (s *Session) Expected() (rune, bool) {
	if s.position >= len(s.target) {
		return 0, false
	}
	return s.target[s.position], true
}

// Options returns a copy of the current deck; empty when nothing is expected.
func (s *Session) Options() []rune {
	return append([]rune(nil), s.options...)
}

// Pending reports whether a completion notification is scheduled.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Session) refreshOptions() {
	expected, ok := s.Expected()
	if !ok {
		s.options = nil
		return
	}
	s.options = s.gen.Options(expected, s.TypedSoFar())
}

func (s *Session) schedule(delay time.Duration) {
	s.mu.Lock()
	s.stopLocked()
	epoch := s.epoch
	s.mu.Unlock()

	verse := s.verse
	timer := s.clock.AfterFunc(delay, func() {
		s.fire(epoch, verse)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	// The timer may already have fired and advanced the epoch.
	if s.epoch == epoch {
		s.timer = timer
	}
}

func (s *Session) fire(epoch uint64, verse model.Verse) {
	s.mu.Lock()
	current := epoch == s.epoch
	if current {
		s.timer = nil
		s.epoch++
	}
	s.mu.Unlock()
	if current && s.onComplete != nil {
		s.onComplete(verse)
	}
}

func (s *Session) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopLocked invalidates the scheduled notification even if its timer has
// already fired and is waiting on mu.
func (s *Session) stopLocked() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
