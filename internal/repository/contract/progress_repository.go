package contract

import (
	"context"

	"github.com/google/uuid"
)

type ProgressRepository interface {
	// CountCompleted counts completed progress rows for the user across the
	// course's videos.
	CountCompleted(ctx context.Context, userId, courseId uuid.UUID) (int64, error)
	// DeleteByUserAndCourse purges all progress the user accumulated on the
	// course's videos. Part of the refund unwind.
	DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error
}
