package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error)
	// FindAllDetailed preloads Course, Payment, Receipt and Refund relations.
	FindAllDetailed(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error)
	// DeletePending removes every PENDING purchase for the (user, course)
	// pair together with its payment and bank-transfer rows; a fresh
	// attempt supersedes stale ones.
	DeletePending(ctx context.Context, userId, courseId uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PurchaseStatus) error
}
