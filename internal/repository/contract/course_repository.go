package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CourseRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAllPublished(ctx context.Context) ([]*entity.Course, error)
	CountVideos(ctx context.Context, courseId uuid.UUID) (int64, error)
}
