package entity

import "time"

type Message struct {
	ID          uint       `json:"id" gorm:"primaryKey;column:id"`
	SenderID    uint       `json:"-" gorm:"not null;index;column:sender_id"`
	Sender      User       `json:"sender" gorm:"foreignKey:SenderID"`
	RecipientID uint       `json:"-" gorm:"not null;index;column:recipient_id"`
	Recipient   User       `json:"recipient" gorm:"foreignKey:RecipientID"`
	Content     string     `json:"content" gorm:"not null;column:content"`
	SentAt      time.Time  `json:"sentAt" gorm:"not null;column:sent_at"`
	ReadAt      *time.Time `json:"readAt,omitempty" gorm:"column:read_at"`
}

// Counterpart returns whichever of sender and recipient is not selfID.
func (m Message) Counterpart(selfID uint) User {
	if m.Sender.ID == selfID {
		return m.Recipient
	}
	return m.Sender
}

func (m Message) SentBy(userID uint) bool {
	return m.Sender.ID == userID
}
