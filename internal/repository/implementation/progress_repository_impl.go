package implementation

import (
	"context"

	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type progressRepositoryImpl struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) contract.ProgressRepository {
	return &progressRepositoryImpl{db: db}
}

func (r *progressRepositoryImpl) CountCompleted(ctx context.Context, userId, courseId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Progress{}).
		Where("user_id = ? AND is_completed = ?", userId, true).
		Where("video_id IN (?)", r.db.Model(&model.Video{}).Select("id").Where("course_id = ?", courseId)).
		Count(&count).Error
	return count, err
}

func (r *progressRepositoryImpl) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("video_id IN (?)", r.db.Model(&model.Video{}).Select("id").Where("course_id = ?", courseId)).
		Delete(&model.Progress{}).Error
}
