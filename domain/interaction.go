package domain

import "time"

const (
	InteractionView  = "view"
	InteractionLike  = "like"
	InteractionSave  = "save"
	InteractionShare = "share"
	InteractionVisit = "visit"
)

// UserInteraction is an append-only log of weighted events linking a user
// to a spot, used as an implicit preference signal.
type UserInteraction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	SpotID          uint      `gorm:"column:spot_id;not null;index" json:"spot_id"`
	InteractionType string    `gorm:"column:interaction_type;not null" json:"interaction_type"`
	Weight          int       `gorm:"column:weight;not null" json:"weight"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}
