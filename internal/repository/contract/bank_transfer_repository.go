package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"
)

type BankTransferRepository interface {
	Create(ctx context.Context, transfer *entity.BankTransfer) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BankTransfer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BankTransfer, error)
	// UpdateIfStatus writes the transfer's status and approval fields only
	// while the stored row still carries the expected status. Returns false
	// when another transition won the race.
	UpdateIfStatus(ctx context.Context, transfer *entity.BankTransfer, expected entity.BankTransferStatus) (bool, error)
}
