package domain

import "time"

type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"column:follower_id;not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"column:following_id;not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
