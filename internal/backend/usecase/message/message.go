package message

import (
	"context"
	"errors"
	"time"

	matchRepo "github.com/ghaniswara/workmatch/internal/backend/repository/match"
	messageRepo "github.com/ghaniswara/workmatch/internal/backend/repository/message"
	"github.com/ghaniswara/workmatch/internal/entity"
)

var ErrNotMatched = errors.New("You can only message matched users")

type IMessageUseCase interface {
	Send(ctx context.Context, senderID uint, req entity.SendMessageRequest) (*entity.Message, error)
	// Conversation returns the thread with peerID and marks peerID's messages read.
	Conversation(ctx context.Context, userID, peerID uint) ([]entity.Message, error)
	Unread(ctx context.Context, userID uint) ([]entity.Message, error)
}

type messageUseCase struct {
	matchRepo   matchRepo.IMatchRepo
	messageRepo messageRepo.IMessageRepo
	now         func() time.Time
}

func New(matchRepo matchRepo.IMatchRepo, messageRepo messageRepo.IMessageRepo) IMessageUseCase {
	return &messageUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		now:         time.Now,
	}
}

func (u *messageUseCase) matched(ctx context.Context, a, b uint) error {
	m, err := u.matchRepo.FindByUsers(ctx, a, b)
	if errors.Is(err, matchRepo.ErrNotFound) {
		return ErrNotMatched
	}
	if err != nil {
		return err
	}
	if m.Status != entity.MatchStatusMatched {
		return ErrNotMatched
	}
	return nil
}

func (u *messageUseCase) Send(ctx context.Context, senderID uint, req entity.SendMessageRequest) (*entity.Message, error) {
	if err := u.matched(ctx, senderID, req.RecipientID); err != nil {
		return nil, err
	}
	return u.messageRepo.Create(ctx, senderID, req.RecipientID, req.Content)
}

func (u *messageUseCase) Conversation(ctx context.Context, userID, peerID uint) ([]entity.Message, error) {
	if err := u.matched(ctx, userID, peerID); err != nil {
		return nil, err
	}

	if err := u.messageRepo.MarkRead(ctx, userID, peerID, u.now().UTC()); err != nil {
		return nil, err
	}
	return u.messageRepo.Between(ctx, userID, peerID)
}

func (u *messageUseCase) Unread(ctx context.Context, userID uint) ([]entity.Message, error) {
	return u.messageRepo.Unread(ctx, userID)
}
