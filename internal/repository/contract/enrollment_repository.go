package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	FindByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.Enrollment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error)
	DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error
}
