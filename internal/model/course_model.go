package model

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       int       `gorm:"not null"`
	IsPublished bool      `gorm:"default:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Course) TableName() string {
	return "courses"
}

type Video struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	SortOrder int       `gorm:"default:0"`

	Course Course `gorm:"foreignKey:CourseId"`
}

func (Video) TableName() string {
	return "videos"
}
