package match

import (
	"context"
	"errors"
	"time"

	matchRepo "github.com/ghaniswara/workmatch/internal/backend/repository/match"
	userRepo "github.com/ghaniswara/workmatch/internal/backend/repository/user"
	"github.com/ghaniswara/workmatch/internal/entity"
)

const (
	LikeSentMessage = "Like sent successfully"
	MatchedMessage  = "It's a match!"
	RejectedMessage = "User rejected"
)

var (
	ErrSelfLike     = errors.New("Cannot like yourself")
	ErrAlreadyLiked = errors.New("Already liked this user")
	ErrUnknownUser  = errors.New("User not found")
)

type IMatchUseCase interface {
	GetPotentialMatches(ctx context.Context, user entity.User) ([]entity.User, error)
	Like(ctx context.Context, userID, targetID uint) (entity.LikeResponse, error)
	Reject(ctx context.Context, userID, targetID uint) error
	GetMatches(ctx context.Context, userID uint) ([]entity.Match, error)
	GetPending(ctx context.Context, userID uint) ([]entity.Match, error)
}

type matchUseCase struct {
	userRepo  userRepo.IUserRepo
	matchRepo matchRepo.IMatchRepo
	now       func() time.Time
}

func NewMatchUseCase(userRepo userRepo.IUserRepo, matchRepo matchRepo.IMatchRepo) IMatchUseCase {
	return &matchUseCase{
		userRepo:  userRepo,
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

func (m *matchUseCase) GetPotentialMatches(ctx context.Context, user entity.User) ([]entity.User, error) {
	decided, err := m.matchRepo.GetDecidedIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return m.userRepo.GetPotentialMatches(ctx, user.ID, user.InterestedInGenders, user.Department, decided)
}

// Like records userID's interest in targetID. A like answering a pending
// like from targetID completes the match.
func (m *matchUseCase) Like(ctx context.Context, userID, targetID uint) (entity.LikeResponse, error) {
	if userID == targetID {
		return entity.LikeResponse{}, ErrSelfLike
	}

	if _, err := m.userRepo.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return entity.LikeResponse{}, ErrUnknownUser
		}
		return entity.LikeResponse{}, err
	}

	existing, err := m.matchRepo.FindByUsers(ctx, userID, targetID)
	switch {
	case errors.Is(err, matchRepo.ErrNotFound):
		if _, err := m.matchRepo.Create(ctx, userID, targetID, entity.MatchStatusPending); err != nil {
			return entity.LikeResponse{}, err
		}
		return entity.LikeResponse{Message: LikeSentMessage}, nil
	case err != nil:
		return entity.LikeResponse{}, err
	}

	if existing.User2ID != userID || existing.Status != entity.MatchStatusPending {
		return entity.LikeResponse{}, ErrAlreadyLiked
	}

	matchedAt := m.now().UTC()
	if err := m.matchRepo.UpdateStatus(ctx, existing.ID, entity.MatchStatusMatched, &matchedAt); err != nil {
		return entity.LikeResponse{}, err
	}
	return entity.LikeResponse{Message: MatchedMessage, Match: true}, nil
}

// Reject only changes a like that targetID sent to userID. Rejecting anyone
// else is accepted and ignored.
func (m *matchUseCase) Reject(ctx context.Context, userID, targetID uint) error {
	existing, err := m.matchRepo.FindByUsers(ctx, userID, targetID)
	if errors.Is(err, matchRepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if existing.User2ID != userID {
		return nil
	}
	return m.matchRepo.UpdateStatus(ctx, existing.ID, entity.MatchStatusRejected, existing.MatchedAt)
}

func (m *matchUseCase) GetMatches(ctx context.Context, userID uint) ([]entity.Match, error) {
	return m.matchRepo.GetMatched(ctx, userID)
}

func (m *matchUseCase) GetPending(ctx context.Context, userID uint) ([]entity.Match, error) {
	return m.matchRepo.GetPending(ctx, userID)
}
