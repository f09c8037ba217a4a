// Package matches lists the session user's matches, pending likes and unread
// messages, each resolved to the counterpart user.
package matches

import (
	"context"
	"sort"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
)

type MatchAPI interface {
	MyMatches(ctx context.Context) ([]entity.Match, error)
	Pending(ctx context.Context) ([]entity.Match, error)
}

type UnreadAPI interface {
	Unread(ctx context.Context) ([]entity.Message, error)
}

// Identity reports the signed-in user's id.
type Identity interface {
	UserID() uint
}

type Entry struct {
	Match       entity.Match
	Counterpart entity.User
}

// Inbox groups unread messages by sender.
type Inbox struct {
	From     entity.User
	Messages []entity.Message
}

type Lister struct {
	matches MatchAPI
	unread  UnreadAPI
	self    Identity
}

func New(matches MatchAPI, unread UnreadAPI, self Identity) *Lister {
	return &Lister{matches: matches, unread: unread, self: self}
}

// List fetches every match once. Fetch failures are logged and yield an
// empty list.
func (l *Lister) List(ctx context.Context) []Entry {
	list, err := l.matches.MyMatches(ctx)
	if err != nil {
		logger.Error("load matches", "error", err)
		return nil
	}
	return Resolve(list, l.self.UserID())
}

// Pending lists likes the session user received and has not answered.
func (l *Lister) Pending(ctx context.Context) []Entry {
	list, err := l.matches.Pending(ctx)
	if err != nil {
		logger.Error("load pending matches", "error", err)
		return nil
	}
	return Resolve(list, l.self.UserID())
}

func (l *Lister) Unread(ctx context.Context) []Inbox {
	msgs, err := l.unread.Unread(ctx)
	if err != nil {
		logger.Error("load unread messages", "error", err)
		return nil
	}
	return GroupBySender(msgs)
}

func Resolve(list []entity.Match, selfID uint) []Entry {
	out := make([]Entry, 0, len(list))
	for _, m := range list {
		out = append(out, Entry{Match: m, Counterpart: m.Counterpart(selfID)})
	}
	return out
}

// GroupBySender keeps senders in order of their first unread message.
func GroupBySender(msgs []entity.Message) []Inbox {
	index := make(map[uint]int)
	var out []Inbox

	sorted := append([]entity.Message(nil), msgs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SentAt.Before(sorted[j].SentAt) })

	for _, m := range sorted {
		i, ok := index[m.Sender.ID]
		if !ok {
			i = len(out)
			index[m.Sender.ID] = i
			out = append(out, Inbox{From: m.Sender})
		}
		out[i].Messages = append(out[i].Messages, m)
	}
	return out
}
