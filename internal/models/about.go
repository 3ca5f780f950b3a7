package models

import "time"

// About is a free-standing identifier record shown on the about page.
type About struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AboutID   string    `json:"about_id" gorm:"size:255;index;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_abouts_created_at,sort:desc"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for the About model.
func (About) TableName() string {
	return "abouts"
}
