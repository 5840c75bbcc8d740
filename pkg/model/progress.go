package model

import "time"

// Progress is the stored progress document of a study profile
type Progress struct {
	Profile   string    `gorm:"primaryKey"`
	Document  []byte    `gorm:"type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Progress) TableName() string {
	return "progress"
}
