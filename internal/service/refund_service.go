package service

import (
	"context"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	commerceEvents "course-platform-be/pkg/commerce/events"

	"github.com/google/uuid"
)

type IRefundService interface {
	RequestRefund(ctx context.Context, userId uuid.UUID, req *dto.CreateRefundRequest) (*dto.RefundResponse, error)
	GetMyRefunds(ctx context.Context, userId uuid.UUID) ([]*dto.RefundResponse, error)
}

type refundService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  commerceEvents.Publisher
	logger     logger.ILogger
}

func NewRefundService(uowFactory unitofwork.RepositoryFactory, publisher commerceEvents.Publisher, log logger.ILogger) IRefundService {
	return &refundService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// RequestRefund files a refund request after checking eligibility: ownership,
// a completed purchase, no prior request, the refund window, and the
// consumption ceiling. Bank-transfer purchases must include a payout account
// because there is no gateway to return the money through.
func (s *refundService) RequestRefund(ctx context.Context, userId uuid.UUID, req *dto.CreateRefundRequest) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: req.PurchaseId})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NotFound("purchase not found")
	}
	if purchase.UserId != userId {
		return nil, apperror.Authorization("purchase belongs to another user")
	}
	if purchase.Status != entity.PurchaseStatusCompleted {
		return nil, apperror.Conflict("only completed purchases can be refunded")
	}

	existing, err := uow.RefundRepository().FindByPurchaseId(ctx, purchase.Id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("refund already requested for this purchase")
	}

	payment, err := uow.PaymentRepository().FindByPurchaseId(ctx, purchase.Id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found for purchase")
	}

	var account *entity.RefundAccount
	if payment.Method == entity.PaymentMethodBankTransfer {
		if req.AccountBank == "" || req.AccountNumber == "" || req.AccountHolder == "" {
			return nil, apperror.Validation("refund account details are required for bank transfer purchases")
		}
		account = &entity.RefundAccount{
			Bank:   req.AccountBank,
			Number: req.AccountNumber,
			Holder: req.AccountHolder,
		}
	}

	completedAt := purchase.UpdatedAt
	if payment.PaidAt != nil {
		completedAt = *payment.PaidAt
	}
	if !withinRefundWindow(completedAt, nowFunc()) {
		return nil, apperror.Validation("refund window has closed")
	}

	totalVideos, err := uow.CourseRepository().CountVideos(ctx, purchase.CourseId)
	if err != nil {
		return nil, err
	}
	completedVideos, err := uow.ProgressRepository().CountCompleted(ctx, userId, purchase.CourseId)
	if err != nil {
		return nil, err
	}
	if !progressAllowsRefund(completedVideos, totalVideos) {
		return nil, apperror.Validation("too much of the course has been watched to refund")
	}

	refund := &entity.Refund{
		Id:           uuid.New(),
		PurchaseId:   purchase.Id,
		Reason:       req.Reason,
		RefundAmount: purchase.Amount,
		Account:      account,
		Status:       entity.RefundStatusPending,
	}
	if err := uow.RefundRepository().Create(ctx, refund); err != nil {
		return nil, err
	}

	s.logger.Info("REFUND", "Refund requested", map[string]interface{}{
		"refund_id":   refund.Id.String(),
		"purchase_id": purchase.Id.String(),
		"amount":      refund.RefundAmount,
	})
	s.publisher.PublishRefundRequested(ctx, refund.Id, purchase.Id, userId, refund.RefundAmount)

	return mapRefundToResponse(refund), nil
}

func (s *refundService) GetMyRefunds(ctx context.Context, userId uuid.UUID) ([]*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchases, err := uow.PurchaseRepository().FindAllDetailed(ctx,
		specification.ByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.RefundResponse
	for _, p := range purchases {
		if p.Refund != nil {
			res = append(res, mapRefundToResponse(p.Refund))
		}
	}
	return res, nil
}

func mapRefundToResponse(r *entity.Refund) *dto.RefundResponse {
	return &dto.RefundResponse{
		Id:           r.Id,
		PurchaseId:   r.PurchaseId,
		Reason:       r.Reason,
		RefundAmount: r.RefundAmount,
		Status:       string(r.Status),
		RejectReason: r.RejectReason,
		RequestedAt:  r.RequestedAt,
		ProcessedAt:  r.ProcessedAt,
	}
}
