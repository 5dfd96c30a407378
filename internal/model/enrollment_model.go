package model

import (
	"time"

	"github.com/google/uuid"
)

// The unique (user_id, course_id) index backs the completion transaction's
// guarded-create: a duplicate completion signal can never produce two rows.
type Enrollment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	CourseId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	EnrolledAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt  *time.Time

	Course Course `gorm:"foreignKey:CourseId"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
