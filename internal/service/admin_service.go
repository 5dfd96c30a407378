package service

import (
	"context"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	"course-platform-be/pkg/admin/banktransfer"
	adminCoupon "course-platform-be/pkg/admin/coupon"
	adminRefund "course-platform-be/pkg/admin/refund"
	"course-platform-be/pkg/admin/taxinvoice"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListRefunds(ctx context.Context, page, limit int, status string) ([]*dto.RefundResponse, error)
	ApproveRefund(ctx context.Context, refundId uuid.UUID) (*dto.RefundResponse, error)
	RejectRefund(ctx context.Context, refundId uuid.UUID, req *dto.AdminRejectRefundRequest) (*dto.RefundResponse, error)

	ListBankTransfers(ctx context.Context, page, limit int, status string) ([]*dto.AdminBankTransferResponse, error)
	ApproveBankTransfer(ctx context.Context, transferId, adminId uuid.UUID) error
	RejectBankTransfer(ctx context.Context, transferId uuid.UUID) error

	ListCoupons(ctx context.Context, page, limit int) ([]*dto.CouponResponse, error)
	CreateCoupon(ctx context.Context, req *dto.AdminCreateCouponRequest) (*dto.CouponResponse, error)
	UpdateCoupon(ctx context.Context, couponId uuid.UUID, req *dto.AdminUpdateCouponRequest) (*dto.CouponResponse, error)
	DeactivateCoupon(ctx context.Context, couponId uuid.UUID) error

	ListTaxInvoices(ctx context.Context, page, limit int, status string) ([]*dto.AdminTaxInvoiceResponse, error)
	IssueTaxInvoice(ctx context.Context, invoiceId uuid.UUID) (*dto.AdminTaxInvoiceResponse, error)
}

type adminService struct {
	uowFactory      unitofwork.RepositoryFactory
	refundProcessor *adminRefund.Processor
	approver        *banktransfer.Approver
	couponManager   *adminCoupon.Manager
	taxManager      *taxinvoice.Manager
	mailQueue       IMailQueue
	logger          logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	refundProcessor *adminRefund.Processor,
	approver *banktransfer.Approver,
	couponManager *adminCoupon.Manager,
	taxManager *taxinvoice.Manager,
	mailQueue IMailQueue,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:      uowFactory,
		refundProcessor: refundProcessor,
		approver:        approver,
		couponManager:   couponManager,
		taxManager:      taxManager,
		mailQueue:       mailQueue,
		logger:          log,
	}
}

func (s *adminService) ListRefunds(ctx context.Context, page, limit int, status string) ([]*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	refunds, err := s.refundProcessor.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.RefundResponse, 0, len(refunds))
	for _, r := range refunds {
		res = append(res, mapRefundToResponse(r))
	}
	return res, nil
}

func (s *adminService) ApproveRefund(ctx context.Context, refundId uuid.UUID) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.refundProcessor.Approve(ctx, uow, refundId); err != nil {
		return nil, err
	}

	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}

	s.notifyRefundOutcome(ctx, uow, refund, dto.EmailKindRefundCompleted, "")
	return mapRefundToResponse(refund), nil
}

func (s *adminService) RejectRefund(ctx context.Context, refundId uuid.UUID, req *dto.AdminRejectRefundRequest) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.refundProcessor.Reject(ctx, uow, refundId, req.RejectReason); err != nil {
		return nil, err
	}

	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}

	s.notifyRefundOutcome(ctx, uow, refund, dto.EmailKindRefundRejected, req.RejectReason)
	return mapRefundToResponse(refund), nil
}

// notifyRefundOutcome is best effort; a failed lookup only costs the email.
func (s *adminService) notifyRefundOutcome(ctx context.Context, uow unitofwork.UnitOfWork, refund *entity.Refund, kind, reason string) {
	if refund == nil {
		return
	}
	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: refund.PurchaseId})
	if err != nil || purchase == nil {
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: purchase.UserId})
	if err != nil || user == nil {
		return
	}
	courseTitle := ""
	if course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: purchase.CourseId}); err == nil && course != nil {
		courseTitle = course.Title
	}
	s.mailQueue.Enqueue(ctx, dto.EmailMessage{
		Kind:        kind,
		ToEmail:     user.Email,
		CourseTitle: courseTitle,
		Amount:      refund.RefundAmount,
		Reason:      reason,
	})
}

func (s *adminService) ListBankTransfers(ctx context.Context, page, limit int, status string) ([]*dto.AdminBankTransferResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	transfers, err := s.approver.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AdminBankTransferResponse, 0, len(transfers))
	for _, t := range transfers {
		res = append(res, &dto.AdminBankTransferResponse{
			Id:                  t.Id,
			PaymentId:           t.PaymentId,
			DepositorName:       t.DepositorName,
			ExpectedDepositDate: t.ExpectedDepositDate,
			Status:              string(t.Status),
			ApprovedAt:          t.ApprovedAt,
			CreatedAt:           t.CreatedAt,
		})
	}
	return res, nil
}

func (s *adminService) ApproveBankTransfer(ctx context.Context, transferId, adminId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.approver.Approve(ctx, uow, transferId, adminId)
	if err != nil {
		return err
	}

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: result.PurchaseId})
	if err != nil || purchase == nil {
		return nil
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: purchase.UserId})
	if err != nil || user == nil {
		return nil
	}
	courseTitle := ""
	if course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: purchase.CourseId}); err == nil && course != nil {
		courseTitle = course.Title
	}
	s.mailQueue.Enqueue(ctx, dto.EmailMessage{
		Kind:          dto.EmailKindReceipt,
		ToEmail:       user.Email,
		CourseTitle:   courseTitle,
		ReceiptNumber: result.Receipt.ReceiptNumber,
		Amount:        result.Receipt.Amount,
	})
	return nil
}

func (s *adminService) RejectBankTransfer(ctx context.Context, transferId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.approver.Reject(ctx, uow, transferId)
}

func (s *adminService) ListCoupons(ctx context.Context, page, limit int) ([]*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	coupons, err := s.couponManager.GetAll(ctx, uow, page, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		res = append(res, mapCouponToResponse(c))
	}
	return res, nil
}

func (s *adminService) CreateCoupon(ctx context.Context, req *dto.AdminCreateCouponRequest) (*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	coupon, err := s.couponManager.Create(ctx, uow, adminCoupon.CreateInput{
		Code:                req.Code,
		Description:         req.Description,
		DiscountType:        entity.DiscountType(req.DiscountType),
		DiscountValue:       req.DiscountValue,
		MinPurchaseAmount:   req.MinPurchaseAmount,
		MaxDiscountAmount:   req.MaxDiscountAmount,
		ValidFrom:           req.ValidFrom,
		ValidUntil:          req.ValidUntil,
		UsageLimit:          req.UsageLimit,
		UsageLimitPerUser:   req.UsageLimitPerUser,
		ApplicableCourseIds: req.ApplicableCourseIds,
	})
	if err != nil {
		return nil, err
	}
	return mapCouponToResponse(coupon), nil
}

func (s *adminService) UpdateCoupon(ctx context.Context, couponId uuid.UUID, req *dto.AdminUpdateCouponRequest) (*dto.CouponResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	coupon, err := s.couponManager.Update(ctx, uow, couponId, adminCoupon.UpdateInput{
		Description:         req.Description,
		DiscountValue:       req.DiscountValue,
		MinPurchaseAmount:   req.MinPurchaseAmount,
		MaxDiscountAmount:   req.MaxDiscountAmount,
		ValidUntil:          req.ValidUntil,
		UsageLimit:          req.UsageLimit,
		UsageLimitPerUser:   req.UsageLimitPerUser,
		IsActive:            req.IsActive,
		ApplicableCourseIds: req.ApplicableCourseIds,
	})
	if err != nil {
		return nil, err
	}
	return mapCouponToResponse(coupon), nil
}

func (s *adminService) DeactivateCoupon(ctx context.Context, couponId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.couponManager.Deactivate(ctx, uow, couponId)
}

func (s *adminService) ListTaxInvoices(ctx context.Context, page, limit int, status string) ([]*dto.AdminTaxInvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoices, err := s.taxManager.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AdminTaxInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, mapTaxInvoiceToResponse(inv))
	}
	return res, nil
}

func (s *adminService) IssueTaxInvoice(ctx context.Context, invoiceId uuid.UUID) (*dto.AdminTaxInvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice, err := s.taxManager.MarkIssued(ctx, uow, invoiceId)
	if err != nil {
		return nil, err
	}
	return mapTaxInvoiceToResponse(invoice), nil
}

func mapCouponToResponse(c *entity.Coupon) *dto.CouponResponse {
	return &dto.CouponResponse{
		Id:                  c.Id,
		Code:                c.Code,
		Description:         c.Description,
		DiscountType:        string(c.DiscountType),
		DiscountValue:       c.DiscountValue,
		MinPurchaseAmount:   c.MinPurchaseAmount,
		MaxDiscountAmount:   c.MaxDiscountAmount,
		ValidFrom:           c.ValidFrom,
		ValidUntil:          c.ValidUntil,
		UsageLimit:          c.UsageLimit,
		UsageLimitPerUser:   c.UsageLimitPerUser,
		UsageCount:          c.UsageCount,
		IsActive:            c.IsActive,
		ApplicableCourseIds: c.ApplicableCourseIds,
	}
}

func mapTaxInvoiceToResponse(inv *entity.TaxInvoice) *dto.AdminTaxInvoiceResponse {
	return &dto.AdminTaxInvoiceResponse{
		Id:             inv.Id,
		PurchaseId:     inv.PurchaseId,
		BusinessName:   inv.BusinessName,
		BusinessNumber: inv.BusinessNumber,
		Status:         string(inv.Status),
		RequestedAt:    inv.RequestedAt,
		IssuedAt:       inv.IssuedAt,
	}
}
