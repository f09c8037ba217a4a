package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ghaniswara/workmatch/internal/usecase/conversation"
)

func (a *App) chat(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: chat <userId>", ErrUsage)
	}
	peerID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || peerID == 0 {
		return fmt.Errorf("%w: chat <userId>", ErrUsage)
	}

	selfID := a.session.UserID()
	conv := conversation.New(a.client.Messages, a.session, uint(peerID))
	conv.PollInterval = a.duration("POLL_INTERVAL", conversation.DefaultPollInterval)

	var (
		mu     sync.Mutex
		shown  = make(map[uint]bool)
		header bool
		hinted bool
	)
	conv.OnUpdate = func(snap conversation.Snapshot) {
		mu.Lock()
		defer mu.Unlock()

		if len(snap.Messages) == 0 && !hinted {
			a.printf("No messages yet. Say hi!\n")
			hinted = true
		}
		if snap.Counterpart != nil && !header {
			a.printf("--- %s ---\n", snap.Counterpart.FullName())
			header = true
		}
		for _, m := range snap.Messages {
			if shown[m.ID] {
				continue
			}
			shown[m.ID] = true
			a.printf("%s", messageLine(m, selfID))
		}
	}

	pollCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- conv.Run(pollCtx) }()
	defer func() {
		stop()
		<-done
	}()

	a.printf("Type a message and press enter, /back to leave.\n")
	for {
		line, err := a.readLine()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return ignoreEOF(err)
		}

		switch strings.TrimSpace(line) {
		case "/back", "/q", "/quit":
			return nil
		}

		_, err = conv.Send(ctx, line)
		switch {
		case err == nil, errors.Is(err, conversation.ErrEmptyMessage):
		case errors.Is(err, conversation.ErrSendInFlight):
			a.printf("Still sending the previous message.\n")
		default:
			a.printf("! %s\n", conversation.SendFailedAlert)
		}
	}
}
