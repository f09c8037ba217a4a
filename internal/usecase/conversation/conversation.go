// Package conversation keeps one two-party message thread fresh by polling
// and sends new messages into it.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
)

const (
	DefaultPollInterval = 5 * time.Second

	SendFailedAlert = "Failed to send message. Please make sure you are matched with this user."
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrSendInFlight = errors.New("a message is already being sent")
	ErrSendFailed   = errors.New("send failed")
)

type MessageAPI interface {
	Conversation(ctx context.Context, userID uint) ([]entity.Message, error)
	Send(ctx context.Context, recipientID uint, content string) (*entity.Message, error)
}

type Identity interface {
	UserID() uint
}

// Snapshot is a consistent copy of the thread handed to observers.
type Snapshot struct {
	Messages    []entity.Message
	Counterpart *entity.User
}

type Conversation struct {
	api    MessageAPI
	self   Identity
	peerID uint

	PollInterval time.Duration
	// OnUpdate, when set, is called after every successful refresh or send.
	OnUpdate func(Snapshot)

	mu          sync.Mutex
	messages    []entity.Message
	counterpart *entity.User
	loaded      bool
	draft       string

	sending atomic.Bool
}

func New(api MessageAPI, self Identity, peerID uint) *Conversation {
	return &Conversation{
		api:          api,
		self:         self,
		peerID:       peerID,
		PollInterval: DefaultPollInterval,
	}
}

func (c *Conversation) PeerID() uint {
	return c.peerID
}

// Run refreshes immediately and then on every PollInterval tick until ctx is
// cancelled. Cancelling ctx is how the owner stops polling when it leaves the
// thread or switches to another peer.
func (c *Conversation) Run(ctx context.Context) error {
	log := logger.With("peer_id", c.peerID)
	log.Debug("conversation polling started", "interval", c.PollInterval)
	defer log.Debug("conversation polling stopped")

	_ = c.Refresh(ctx)

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

// Refresh fetches the whole thread and replaces the local copy. Failures are
// logged only; the previous messages stay visible.
func (c *Conversation) Refresh(ctx context.Context) error {
	msgs, err := c.api.Conversation(ctx, c.peerID)

	c.mu.Lock()
	c.loaded = true
	if err != nil {
		c.mu.Unlock()
		if ctx.Err() == nil {
			logger.Error("load conversation", "peer_id", c.peerID, "error", err)
		}
		return fmt.Errorf("load conversation: %w", err)
	}

	c.messages = msgs
	if len(msgs) > 0 {
		peer := msgs[0].Counterpart(c.self.UserID())
		c.counterpart = &peer
	}
	snap := c.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Send posts content (trimmed) to the peer. Blank content and overlapping
// sends are refused before any network call. On success the returned message
// is appended locally and the draft cleared; on failure the draft keeps the
// content for a retry.
func (c *Conversation) Send(ctx context.Context, content string) (*entity.Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	if !c.sending.CompareAndSwap(false, true) {
		return nil, ErrSendInFlight
	}
	defer c.sending.Store(false)

	c.mu.Lock()
	c.draft = content
	c.mu.Unlock()

	msg, err := c.api.Send(ctx, c.peerID, trimmed)
	if err != nil {
		logger.Error("send message", "peer_id", c.peerID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	c.mu.Lock()
	c.messages = append(c.messages, *msg)
	if c.counterpart == nil {
		peer := msg.Recipient
		c.counterpart = &peer
	}
	c.draft = ""
	snap := c.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return msg, nil
}

// SendDraft sends whatever is currently in the draft.
func (c *Conversation) SendDraft(ctx context.Context) (*entity.Message, error) {
	return c.Send(ctx, c.Draft())
}

func (c *Conversation) Sending() bool {
	return c.sending.Load()
}

func (c *Conversation) SetDraft(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = s
}

func (c *Conversation) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Conversation) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

func (c *Conversation) Messages() []entity.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Message(nil), c.messages...)
}

// Counterpart is unknown until the first message is fetched or sent.
func (c *Conversation) Counterpart() (entity.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.counterpart == nil {
		return entity.User{}, false
	}
	return *c.counterpart, true
}

func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Conversation) snapshot() Snapshot {
	snap := Snapshot{Messages: append([]entity.Message(nil), c.messages...)}
	if c.counterpart != nil {
		peer := *c.counterpart
		snap.Counterpart = &peer
	}
	return snap
}

func (c *Conversation) notify(snap Snapshot) {
	if c.OnUpdate != nil {
		c.OnUpdate(snap)
	}
}
