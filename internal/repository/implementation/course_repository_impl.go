package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type courseRepositoryImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) contract.CourseRepository {
	return &courseRepositoryImpl{db: db}
}

func (r *courseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	var mc model.Course
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapCourseToEntity(&mc), nil
}

func (r *courseRepositoryImpl) FindAllPublished(ctx context.Context) ([]*entity.Course, error) {
	var mcs []*model.Course
	if err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&mcs).Error; err != nil {
		return nil, err
	}
	courses := make([]*entity.Course, 0, len(mcs))
	for _, mc := range mcs {
		courses = append(courses, mapCourseToEntity(mc))
	}
	return courses, nil
}

func (r *courseRepositoryImpl) CountVideos(ctx context.Context, courseId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("course_id = ?", courseId).
		Count(&count).Error
	return count, err
}

func mapCourseToEntity(mc *model.Course) *entity.Course {
	return &entity.Course{
		Id:          mc.Id,
		Title:       mc.Title,
		Description: mc.Description,
		Price:       mc.Price,
		IsPublished: mc.IsPublished,
		CreatedAt:   mc.CreatedAt,
		UpdatedAt:   mc.UpdatedAt,
	}
}
