// Package discover drives the swipe feed: one candidate at a time, like or
// pass, refetching once the local list runs out.
package discover

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
)

var ErrNoCandidate = errors.New("no candidate to decide on")

// DefaultFlashDuration is how long a like confirmation stays visible.
const DefaultFlashDuration = 3 * time.Second

type CandidateAPI interface {
	GetPotentialMatches(ctx context.Context) ([]entity.User, error)
}

type DecisionAPI interface {
	Like(ctx context.Context, userID uint) (*entity.LikeResponse, error)
	Reject(ctx context.Context, userID uint) error
}

type State int

const (
	StateLoading State = iota
	StateBrowsing
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateBrowsing:
		return "Browsing"
	case StateExhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

type Deck struct {
	users     CandidateAPI
	decisions DecisionAPI

	FlashDuration time.Duration
	now           func() time.Time

	mu         sync.Mutex
	candidates []entity.User
	cursor     int
	loaded     bool
	flash      string
	flashUntil time.Time
}

func New(users CandidateAPI, decisions DecisionAPI) *Deck {
	return &Deck{
		users:         users,
		decisions:     decisions,
		FlashDuration: DefaultFlashDuration,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for flash expiry.
func (d *Deck) WithClock(now func() time.Time) *Deck {
	d.now = now
	return d
}

// Load fetches a fresh candidate list and rewinds to the first one. A failed
// fetch is logged and leaves the previous list in place.
func (d *Deck) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

func (d *Deck) load(ctx context.Context) error {
	defer func() { d.loaded = true }()

	candidates, err := d.users.GetPotentialMatches(ctx)
	if err != nil {
		logger.Error("load potential matches", "error", err)
		return fmt.Errorf("load potential matches: %w", err)
	}

	d.candidates = candidates
	d.cursor = 0
	return nil
}

// Refresh is the manual reload offered once the deck is exhausted.
func (d *Deck) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

func (d *Deck) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case !d.loaded:
		return StateLoading
	case d.cursor >= len(d.candidates):
		return StateExhausted
	default:
		return StateBrowsing
	}
}

func (d *Deck) Current() (entity.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current()
}

func (d *Deck) current() (entity.User, bool) {
	if d.cursor < 0 || d.cursor >= len(d.candidates) {
		return entity.User{}, false
	}
	return d.candidates[d.cursor], true
}

// Position returns the 1-based index of the current candidate and the total.
func (d *Deck) Position() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor + 1, len(d.candidates)
}

// Like sends a like for the current candidate and advances. The server's
// message is kept as a flash for FlashDuration. The returned bool reports
// whether advancing triggered a refetch.
func (d *Deck) Like(ctx context.Context) (*entity.LikeResponse, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	candidate, ok := d.current()
	if !ok {
		return nil, false, ErrNoCandidate
	}

	resp, err := d.decisions.Like(ctx, candidate.ID)
	if err != nil {
		logger.Error("like user", "user_id", candidate.ID, "error", err)
		return nil, false, fmt.Errorf("like user %d: %w", candidate.ID, err)
	}

	d.flash = resp.Message
	d.flashUntil = d.now().Add(d.FlashDuration)

	return resp, d.advance(ctx), nil
}

// Pass rejects the current candidate and advances.
func (d *Deck) Pass(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	candidate, ok := d.current()
	if !ok {
		return false, ErrNoCandidate
	}

	if err := d.decisions.Reject(ctx, candidate.ID); err != nil {
		logger.Error("reject user", "user_id", candidate.ID, "error", err)
		return false, fmt.Errorf("reject user %d: %w", candidate.ID, err)
	}

	return d.advance(ctx), nil
}

func (d *Deck) advance(ctx context.Context) bool {
	if d.cursor < len(d.candidates)-1 {
		d.cursor++
		return false
	}

	// Error already logged by load; the deck stays on its previous list.
	_ = d.load(ctx)
	return true
}

// Flash returns the confirmation message while it is still visible.
func (d *Deck) Flash() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.flash == "" || !d.now().Before(d.flashUntil) {
		d.flash = ""
		return ""
	}
	return d.flash
}
