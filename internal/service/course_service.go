package service

import (
	"context"
	"fmt"
	"time"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	courseListCacheKey = "courses:published"
	courseCacheTTL     = 5 * time.Minute
)

type ICourseService interface {
	GetCourses(ctx context.Context) ([]*dto.CourseResponse, error)
	GetCourse(ctx context.Context, courseId uuid.UUID) (*dto.CourseResponse, error)
}

// courseService serves the read-only catalog. Prices change rarely, so the
// catalog sits behind a short-lived in-memory cache.
type courseService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewCourseService(uowFactory unitofwork.RepositoryFactory, cache *gocache.Cache) ICourseService {
	return &courseService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *courseService) GetCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	if cached, found := s.cache.Get(courseListCacheKey); found {
		return cached.([]*dto.CourseResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	courses, err := uow.CourseRepository().FindAllPublished(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		res = append(res, mapCourseToResponse(c))
	}

	s.cache.Set(courseListCacheKey, res, courseCacheTTL)
	return res, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseId uuid.UUID) (*dto.CourseResponse, error) {
	cacheKey := fmt.Sprintf("courses:%s", courseId)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*dto.CourseResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsPublished {
		return nil, apperror.NotFound("course not found")
	}

	res := mapCourseToResponse(course)
	s.cache.Set(cacheKey, res, courseCacheTTL)
	return res, nil
}

func mapCourseToResponse(c *entity.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		Id:          c.Id,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		CreatedAt:   c.CreatedAt,
	}
}
