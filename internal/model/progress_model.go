package model

import (
	"time"

	"github.com/google/uuid"
)

type Progress struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_video"`
	VideoId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_video"`
	IsCompleted bool      `gorm:"default:false"`
	WatchedSec  int       `gorm:"default:0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Video Video `gorm:"foreignKey:VideoId"`
}

func (Progress) TableName() string {
	return "progress"
}
