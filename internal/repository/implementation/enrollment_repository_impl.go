package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type enrollmentRepositoryImpl struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) contract.EnrollmentRepository {
	return &enrollmentRepositoryImpl{db: db}
}

func (r *enrollmentRepositoryImpl) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	// A duplicate (user_id, course_id) insert is a replayed completion,
	// not an error.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Enrollment{
			Id:        enrollment.Id,
			UserId:    enrollment.UserId,
			CourseId:  enrollment.CourseId,
			ExpiresAt: enrollment.ExpiresAt,
		}).Error
}

func (r *enrollmentRepositoryImpl) FindByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.Enrollment, error) {
	var me model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userId, courseId).
		First(&me).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapEnrollmentToEntity(&me), nil
}

func (r *enrollmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error) {
	var mes []*model.Enrollment
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mes).Error; err != nil {
		return nil, err
	}
	enrollments := make([]*entity.Enrollment, 0, len(mes))
	for _, me := range mes {
		enrollments = append(enrollments, mapEnrollmentToEntity(me))
	}
	return enrollments, nil
}

func (r *enrollmentRepositoryImpl) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userId, courseId).
		Delete(&model.Enrollment{}).Error
}

func mapEnrollmentToEntity(me *model.Enrollment) *entity.Enrollment {
	return &entity.Enrollment{
		Id:         me.Id,
		UserId:     me.UserId,
		CourseId:   me.CourseId,
		EnrolledAt: me.EnrolledAt,
		ExpiresAt:  me.ExpiresAt,
	}
}
