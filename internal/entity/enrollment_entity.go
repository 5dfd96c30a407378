package entity

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is the durable course-access grant. At most one exists per
// (UserId, CourseId); completion upserts it, refund approval deletes it.
type Enrollment struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	CourseId   uuid.UUID
	EnrolledAt time.Time
	ExpiresAt  *time.Time
}
