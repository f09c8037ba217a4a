package conversation_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/usecase/conversation"
)

type me uint

func (m me) UserID() uint { return uint(m) }

var (
	alice = entity.User{ID: 1, FirstName: "Alice"}
	bob   = entity.User{ID: 2, FirstName: "Bob"}
)

type fakeAPI struct {
	mu      sync.Mutex
	thread  []entity.Message
	fetches atomic.Int32
	sends   atomic.Int32
	sendErr error
	// block, when set, holds Send until it is closed.
	block chan struct{}
	// entered is signalled when Send starts.
	entered chan struct{}
}

func (f *fakeAPI) Conversation(_ context.Context, _ uint) ([]entity.Message, error) {
	f.fetches.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Message(nil), f.thread...), nil
}

func (f *fakeAPI) Send(_ context.Context, recipientID uint, content string) (*entity.Message, error) {
	f.sends.Add(1)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &entity.Message{ID: 100, Sender: alice, Recipient: entity.User{ID: recipientID, FirstName: "Bob"}, Content: content}, nil
}

func TestRefreshReplacesMessages(t *testing.T) {
	api := &fakeAPI{thread: []entity.Message{
		{ID: 1, Sender: bob, Recipient: alice, Content: "hi"},
		{ID: 2, Sender: alice, Recipient: bob, Content: "hello"},
	}}
	conv := conversation.New(api, me(alice.ID), bob.ID)
	ctx := context.Background()

	require.NoError(t, conv.Refresh(ctx))
	require.NoError(t, conv.Refresh(ctx))

	assert.Len(t, conv.Messages(), 2, "a second fetch must not duplicate messages")

	peer, ok := conv.Counterpart()
	require.True(t, ok)
	assert.Equal(t, bob.ID, peer.ID)
}

func TestCounterpartUnknownUntilFirstMessage(t *testing.T) {
	api := &fakeAPI{}
	conv := conversation.New(api, me(alice.ID), bob.ID)
	ctx := context.Background()

	require.NoError(t, conv.Refresh(ctx))
	assert.True(t, conv.Loaded())
	_, ok := conv.Counterpart()
	assert.False(t, ok)

	_, err := conv.Send(ctx, "  first!  ")
	require.NoError(t, err)

	peer, ok := conv.Counterpart()
	require.True(t, ok)
	assert.Equal(t, bob.ID, peer.ID)

	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "first!", msgs[0].Content)
	assert.Empty(t, conv.Draft())
}

func TestSendRejectsBlankWithoutNetwork(t *testing.T) {
	api := &fakeAPI{}
	conv := conversation.New(api, me(alice.ID), bob.ID)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := conv.Send(context.Background(), content)
		assert.ErrorIs(t, err, conversation.ErrEmptyMessage)
	}
	assert.Zero(t, api.sends.Load())
}

func TestSendRejectsOverlap(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	conv := conversation.New(api, me(alice.ID), bob.ID)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := conv.Send(ctx, "one")
		done <- err
	}()

	<-api.entered
	assert.True(t, conv.Sending())

	_, err := conv.Send(ctx, "two")
	assert.ErrorIs(t, err, conversation.ErrSendInFlight)

	close(api.block)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), api.sends.Load())
	assert.False(t, conv.Sending())
}

func TestSendFailureKeepsDraft(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("400 You can only message matched users")}
	conv := conversation.New(api, me(alice.ID), bob.ID)

	conv.SetDraft("are you there?")
	_, err := conv.SendDraft(context.Background())

	assert.ErrorIs(t, err, conversation.ErrSendFailed)
	assert.Equal(t, "are you there?", conv.Draft())
	assert.Empty(t, conv.Messages())
}

func TestRunPollsUntilCancelled(t *testing.T) {
	api := &fakeAPI{thread: []entity.Message{{ID: 1, Sender: bob, Recipient: alice}}}
	conv := conversation.New(api, me(alice.ID), bob.ID)
	conv.PollInterval = 10 * time.Millisecond

	updates := make(chan conversation.Snapshot, 64)
	conv.OnUpdate = func(s conversation.Snapshot) {
		select {
		case updates <- s:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- conv.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case snap := <-updates:
			assert.Len(t, snap.Messages, 1)
		case <-time.After(time.Second):
			t.Fatal("expected periodic refresh")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	stopped := api.fetches.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, api.fetches.Load(), "no fetches after cancel")
}
