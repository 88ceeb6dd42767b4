package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UserPreferences holds one row per user, upserted whenever the preference
// refresh recomputes the region ranking from the interaction log.
type UserPreferences struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	UserID              uint                        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	PreferredRegions    datatypes.JSONSlice[string] `gorm:"column:preferred_regions" json:"preferred_regions"`
	PreferredCategories datatypes.JSONSlice[string] `gorm:"column:preferred_categories" json:"preferred_categories"`
	InterestTags        datatypes.JSONSlice[string] `gorm:"column:interest_tags" json:"interest_tags"`
	UpdatedAt           time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
