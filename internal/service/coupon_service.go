package service

import (
	"context"
	"time"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICouponService interface {
	ValidateCoupon(ctx context.Context, userId uuid.UUID, req *dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)
}

type couponService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCouponService(uowFactory unitofwork.RepositoryFactory) ICouponService {
	return &couponService{
		uowFactory: uowFactory,
	}
}

// ValidateCoupon runs the full redemption rule chain against the course's
// current price and quotes the resulting discount. A passing answer is a
// quote, not a reservation; the rules run again inside the purchase flow.
func (s *couponService) ValidateCoupon(ctx context.Context, userId uuid.UUID, req *dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: req.CourseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperror.NotFound("course not found")
	}

	coupon, discount, err := evaluateCoupon(ctx, uow, userId, req.Code, course)
	if err != nil {
		return nil, err
	}

	return &dto.ValidateCouponResponse{
		CouponId:       coupon.Id,
		Code:           coupon.Code,
		DiscountType:   string(coupon.DiscountType),
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discount,
		OriginalAmount: course.Price,
		FinalAmount:    course.Price - discount,
	}, nil
}

// evaluateCoupon resolves a code to a coupon and its discount for the given
// course, applying every redemption rule. Shared by the quote endpoint and
// both purchase flows so the rules cannot drift apart.
func evaluateCoupon(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, code string, course *entity.Course) (*entity.Coupon, int, error) {
	coupon, err := uow.CouponRepository().FindByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	if coupon == nil {
		return nil, 0, apperror.Validation(entity.ErrCouponNotFound.Error())
	}

	userUsage, err := uow.CouponRepository().CountUsagesByUser(ctx, coupon.Id, userId)
	if err != nil {
		return nil, 0, err
	}

	if err := coupon.Validate(time.Now(), course.Id, int(userUsage), course.Price); err != nil {
		return nil, 0, apperror.Validation(err.Error())
	}

	return coupon, coupon.CalculateDiscount(course.Price), nil
}
