package matchRepo

import (
	"context"
	"errors"
	"time"

	"github.com/ghaniswara/workmatch/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("match not found")

type IMatchRepo interface {
	// FindByUsers returns the match between a and b in either direction.
	FindByUsers(ctx context.Context, a, b uint) (*entity.Match, error)
	Create(ctx context.Context, user1ID, user2ID uint, status entity.MatchStatus) (*entity.Match, error)
	UpdateStatus(ctx context.Context, id uint, status entity.MatchStatus, matchedAt *time.Time) error

	GetMatched(ctx context.Context, userID uint) ([]entity.Match, error)
	// GetPending lists likes received by userID that are still unanswered.
	GetPending(ctx context.Context, userID uint) ([]entity.Match, error)
	// GetDecidedIDs lists users userID already liked or rejected.
	GetDecidedIDs(ctx context.Context, userID uint) ([]uint, error)
}

type MatchRepo struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) IMatchRepo {
	return &MatchRepo{
		db: db,
	}
}

func (m *MatchRepo) preloaded(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx).Preload("User1").Preload("User2")
}

func (m *MatchRepo) FindByUsers(ctx context.Context, a, b uint) (*entity.Match, error) {
	var match entity.Match
	res := m.preloaded(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&match)

	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &match, res.Error
}

func (m *MatchRepo) Create(ctx context.Context, user1ID, user2ID uint, status entity.MatchStatus) (*entity.Match, error) {
	match := entity.Match{
		User1ID: user1ID,
		User2ID: user2ID,
		Status:  status,
	}

	if err := m.db.WithContext(ctx).Omit(clause.Associations).Create(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (m *MatchRepo) UpdateStatus(ctx context.Context, id uint, status entity.MatchStatus, matchedAt *time.Time) error {
	return m.db.WithContext(ctx).
		Model(&entity.Match{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "matched_at": matchedAt}).
		Error
}

func (m *MatchRepo) GetMatched(ctx context.Context, userID uint) ([]entity.Match, error) {
	var matches []entity.Match
	res := m.preloaded(ctx).
		Where("(user1_id = ? OR user2_id = ?) AND status = ?", userID, userID, entity.MatchStatusMatched).
		Order("matched_at DESC").
		Find(&matches)
	return matches, res.Error
}

func (m *MatchRepo) GetPending(ctx context.Context, userID uint) ([]entity.Match, error) {
	var matches []entity.Match
	res := m.preloaded(ctx).
		Where("user2_id = ? AND status = ?", userID, entity.MatchStatusPending).
		Order("created_at").
		Find(&matches)
	return matches, res.Error
}

func (m *MatchRepo) GetDecidedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var liked []uint
	res := m.db.WithContext(ctx).
		Model(&entity.Match{}).
		Where("user1_id = ?", userID).
		Pluck("user2_id", &liked)
	if res.Error != nil {
		return nil, res.Error
	}

	// Likes I received and already answered (matched or rejected).
	var answered []uint
	res = m.db.WithContext(ctx).
		Model(&entity.Match{}).
		Where("user2_id = ? AND status <> ?", userID, entity.MatchStatusPending).
		Pluck("user1_id", &answered)

	return append(liked, answered...), res.Error
}
