package entity

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "PENDING"
	MatchStatusMatched  MatchStatus = "MATCHED"
	MatchStatusRejected MatchStatus = "REJECTED"
)

// Match is a pairing record. User1 is the user who liked first.
type Match struct {
	ID        uint        `json:"id" gorm:"primaryKey;column:id"`
	User1ID   uint        `json:"-" gorm:"not null;index;column:user1_id"`
	User1     User        `json:"user1" gorm:"foreignKey:User1ID"`
	User2ID   uint        `json:"-" gorm:"not null;index;column:user2_id"`
	User2     User        `json:"user2" gorm:"foreignKey:User2ID"`
	Status    MatchStatus `json:"status" gorm:"not null;column:status"`
	MatchedAt *time.Time  `json:"matchedAt,omitempty" gorm:"column:matched_at"`
	CreatedAt time.Time   `json:"createdAt" gorm:"column:created_at"`
}

// Counterpart returns the side of the match that is not selfID.
func (m Match) Counterpart(selfID uint) User {
	if m.User1.ID == selfID {
		return m.User2
	}
	return m.User1
}
