package messageRepo

import (
	"context"
	"time"

	"github.com/ghaniswara/workmatch/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IMessageRepo interface {
	Create(ctx context.Context, senderID, recipientID uint, content string) (*entity.Message, error)
	// Between returns the thread between a and b, oldest first.
	Between(ctx context.Context, a, b uint) ([]entity.Message, error)
	MarkRead(ctx context.Context, recipientID, senderID uint, at time.Time) error
	Unread(ctx context.Context, recipientID uint) ([]entity.Message, error)
}

type MessageRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IMessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Sender").Preload("Recipient")
}

func (r *MessageRepo) Create(ctx context.Context, senderID, recipientID uint, content string) (*entity.Message, error) {
	msg := entity.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		SentAt:      time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&msg).Error; err != nil {
		return nil, err
	}

	var saved entity.Message
	if err := r.preloaded(ctx).First(&saved, msg.ID).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *MessageRepo) Between(ctx context.Context, a, b uint) ([]entity.Message, error) {
	var msgs []entity.Message
	res := r.preloaded(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("sent_at ASC, id ASC").
		Find(&msgs)
	return msgs, res.Error
}

func (r *MessageRepo) MarkRead(ctx context.Context, recipientID, senderID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", recipientID, senderID).
		Update("read_at", at).
		Error
}

func (r *MessageRepo) Unread(ctx context.Context, recipientID uint) ([]entity.Message, error) {
	var msgs []entity.Message
	res := r.preloaded(ctx).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Order("sent_at ASC, id ASC").
		Find(&msgs)
	return msgs, res.Error
}
