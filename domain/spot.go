package domain

import (
	"time"
)

// CREATE TABLE public.spots (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     BIGINT NOT NULL REFERENCES users(id),
//     list_name   TEXT NOT NULL,
//     region      TEXT,
//     place_name  TEXT NOT NULL,
//     url         TEXT,
//     comment     TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Spot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ListName  string    `gorm:"column:list_name;type:text;not null" json:"list_name"`
	Region    string    `gorm:"column:region;type:text;index" json:"region"`
	PlaceName string    `gorm:"column:place_name;type:text;not null" json:"place_name"`
	URL       string    `gorm:"column:url;type:text" json:"url"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Owner User `gorm:"foreignKey:UserID" json:"owner"`
}

func (Spot) TableName() string {
	return "spots"
}
