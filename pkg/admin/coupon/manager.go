// Package coupon provides the admin-facing coupon lifecycle: creation,
// editing, deactivation, and unique code generation.
package coupon

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type CreateInput struct {
	Code                string
	Description         string
	DiscountType        entity.DiscountType
	DiscountValue       int
	MinPurchaseAmount   *int
	MaxDiscountAmount   *int
	ValidFrom           time.Time
	ValidUntil          *time.Time
	UsageLimit          *int
	UsageLimitPerUser   *int
	ApplicableCourseIds []uuid.UUID
}

type UpdateInput struct {
	Description         *string
	DiscountValue       *int
	MinPurchaseAmount   *int
	MaxDiscountAmount   *int
	ValidUntil          *time.Time
	UsageLimit          *int
	UsageLimitPerUser   *int
	IsActive            *bool
	ApplicableCourseIds []uuid.UUID
}

type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// GenerateUniqueCode builds a coupon code with the given prefix and a random
// suffix, retrying on collision. After 10 attempts it falls back to a
// timestamp suffix, which cannot collide within the same millisecond.
func (m *Manager) GenerateUniqueCode(ctx context.Context, uow unitofwork.UnitOfWork, prefix string) (string, error) {
	prefix = strings.ToUpper(prefix)
	for attempt := 0; attempt < 10; attempt++ {
		var sb strings.Builder
		sb.WriteString(prefix)
		for i := 0; i < 6; i++ {
			sb.WriteByte(codeCharset[rand.Intn(len(codeCharset))])
		}
		code := sb.String()

		existing, err := uow.CouponRepository().FindByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return prefix + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36)), nil
}

func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, input CreateInput) (*entity.Coupon, error) {
	if input.DiscountType == entity.DiscountTypePercentage && (input.DiscountValue < 1 || input.DiscountValue > 100) {
		return nil, apperror.Validation("percentage discount must be between 1 and 100")
	}
	if input.DiscountValue <= 0 {
		return nil, apperror.Validation("discount value must be positive")
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		generated, err := m.GenerateUniqueCode(ctx, uow, "CP")
		if err != nil {
			return nil, err
		}
		code = generated
	} else {
		existing, err := uow.CouponRepository().FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.Conflict("coupon code already exists")
		}
	}

	coupon := &entity.Coupon{
		Id:                  uuid.New(),
		Code:                code,
		Description:         input.Description,
		DiscountType:        input.DiscountType,
		DiscountValue:       input.DiscountValue,
		MinPurchaseAmount:   input.MinPurchaseAmount,
		MaxDiscountAmount:   input.MaxDiscountAmount,
		ValidFrom:           input.ValidFrom,
		ValidUntil:          input.ValidUntil,
		UsageLimit:          input.UsageLimit,
		UsageLimitPerUser:   input.UsageLimitPerUser,
		IsActive:            true,
		ApplicableCourseIds: input.ApplicableCourseIds,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CouponRepository().Create(ctx, coupon); err != nil {
		return nil, err
	}
	if len(input.ApplicableCourseIds) > 0 {
		if err := uow.CouponRepository().ReplaceCourses(ctx, coupon.Id, input.ApplicableCourseIds); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN_COUPON", "Coupon created", map[string]interface{}{
		"coupon_id": coupon.Id.String(),
		"code":      coupon.Code,
	})
	return coupon, nil
}

func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, couponId uuid.UUID, input UpdateInput) (*entity.Coupon, error) {
	coupon, err := uow.CouponRepository().FindOne(ctx, specification.ByID{ID: couponId})
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NotFound("coupon not found")
	}

	if input.Description != nil {
		coupon.Description = *input.Description
	}
	if input.DiscountValue != nil {
		if coupon.DiscountType == entity.DiscountTypePercentage && (*input.DiscountValue < 1 || *input.DiscountValue > 100) {
			return nil, apperror.Validation("percentage discount must be between 1 and 100")
		}
		coupon.DiscountValue = *input.DiscountValue
	}
	if input.MinPurchaseAmount != nil {
		coupon.MinPurchaseAmount = input.MinPurchaseAmount
	}
	if input.MaxDiscountAmount != nil {
		coupon.MaxDiscountAmount = input.MaxDiscountAmount
	}
	if input.ValidUntil != nil {
		coupon.ValidUntil = input.ValidUntil
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = input.UsageLimit
	}
	if input.UsageLimitPerUser != nil {
		coupon.UsageLimitPerUser = input.UsageLimitPerUser
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CouponRepository().Update(ctx, coupon); err != nil {
		return nil, err
	}
	if input.ApplicableCourseIds != nil {
		if err := uow.CouponRepository().ReplaceCourses(ctx, coupon.Id, input.ApplicableCourseIds); err != nil {
			return nil, err
		}
		coupon.ApplicableCourseIds = input.ApplicableCourseIds
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN_COUPON", "Coupon updated", map[string]interface{}{
		"coupon_id": coupon.Id.String(),
	})
	return coupon, nil
}

// Deactivate soft-disables a coupon without touching redemption history.
func (m *Manager) Deactivate(ctx context.Context, uow unitofwork.UnitOfWork, couponId uuid.UUID) error {
	inactive := false
	_, err := m.Update(ctx, uow, couponId, UpdateInput{IsActive: &inactive})
	return err
}

// GetAll retrieves paginated coupons.
func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int) ([]*entity.Coupon, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return uow.CouponRepository().FindAll(ctx,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}
