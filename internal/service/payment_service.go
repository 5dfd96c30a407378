package service

import (
	"context"
	"time"

	"course-platform-be/internal/config"
	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	"course-platform-be/pkg/admin/taxinvoice"
	"course-platform-be/pkg/checkout"
	commerceEvents "course-platform-be/pkg/commerce/events"
	"course-platform-be/pkg/tosspay"

	"github.com/google/uuid"
)

type IPaymentService interface {
	RequestCardPayment(ctx context.Context, userId uuid.UUID, req *dto.RequestCardPaymentRequest) (*dto.RequestCardPaymentResponse, error)
	RequestBankTransfer(ctx context.Context, userId uuid.UUID, req *dto.RequestBankTransferRequest) (*dto.RequestBankTransferResponse, error)
	ConfirmPayment(ctx context.Context, userId uuid.UUID, req *dto.ConfirmPaymentRequest) (*dto.ConfirmPaymentResponse, error)
	GetMyPayments(ctx context.Context, userId uuid.UUID) ([]*dto.PaymentHistoryItem, error)
	RequestTaxInvoice(ctx context.Context, userId, purchaseId uuid.UUID, req *dto.RequestTaxInvoiceRequest) (*dto.AdminTaxInvoiceResponse, error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    tosspay.IClient
	completer  *checkout.Completer
	publisher  commerceEvents.Publisher
	mailQueue  IMailQueue
	taxManager *taxinvoice.Manager
	deposit    config.DepositConfig
	logger     logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway tosspay.IClient,
	completer *checkout.Completer,
	publisher commerceEvents.Publisher,
	mailQueue IMailQueue,
	taxManager *taxinvoice.Manager,
	deposit config.DepositConfig,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		gateway:    gateway,
		completer:  completer,
		publisher:  publisher,
		mailQueue:  mailQueue,
		taxManager: taxManager,
		deposit:    deposit,
		logger:     log,
	}
}

// buyerInfo is the checkout contact snapshot stored on the purchase.
type buyerInfo struct {
	Name  string
	Email string
	Phone string
}

// preparePurchase runs the shared front half of both purchase flows: course
// and enrollment checks, stale-attempt cleanup, coupon pricing, and the
// PENDING purchase row. Runs inside the caller's transaction.
func (s *paymentService) preparePurchase(ctx context.Context, uow unitofwork.UnitOfWork, userId, courseId uuid.UUID, couponCode string, buyer buyerInfo) (*entity.Purchase, *entity.Course, error) {
	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, nil, err
	}
	if course == nil || !course.IsPublished {
		return nil, nil, apperror.NotFound("course not found")
	}

	enrollment, err := uow.EnrollmentRepository().FindByUserAndCourse(ctx, userId, courseId)
	if err != nil {
		return nil, nil, err
	}
	if enrollment != nil {
		return nil, nil, apperror.Conflict("already enrolled in this course")
	}

	// A fresh attempt supersedes abandoned ones.
	if err := uow.PurchaseRepository().DeletePending(ctx, userId, courseId); err != nil {
		return nil, nil, err
	}

	amount := course.Price
	var discount *entity.Discount
	if couponCode != "" {
		coupon, discountAmount, err := evaluateCoupon(ctx, uow, userId, couponCode, course)
		if err != nil {
			return nil, nil, err
		}
		discount = &entity.Discount{
			CouponId:       coupon.Id,
			OriginalAmount: course.Price,
			Amount:         discountAmount,
		}
		amount = course.Price - discountAmount
	}

	purchase := &entity.Purchase{
		Id:         uuid.New(),
		UserId:     userId,
		CourseId:   courseId,
		Amount:     amount,
		Discount:   discount,
		BuyerName:  buyer.Name,
		BuyerEmail: buyer.Email,
		BuyerPhone: buyer.Phone,
		Status:     entity.PurchaseStatusPending,
	}
	if err := uow.PurchaseRepository().Create(ctx, purchase); err != nil {
		return nil, nil, err
	}

	return purchase, course, nil
}

func (s *paymentService) RequestCardPayment(ctx context.Context, userId uuid.UUID, req *dto.RequestCardPaymentRequest) (*dto.RequestCardPaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	purchase, course, err := s.preparePurchase(ctx, uow, userId, req.CourseId, req.CouponCode, buyerInfo{
		Name:  req.BuyerName,
		Email: req.BuyerEmail,
		Phone: req.BuyerPhone,
	})
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		Id:         uuid.New(),
		PurchaseId: purchase.Id,
		OrderId:    checkout.NewOrderId(),
		Method:     entity.PaymentMethodCard,
		Status:     entity.PaymentStatusPending,
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PAYMENT", "Card payment requested", map[string]interface{}{
		"purchase_id": purchase.Id.String(),
		"order_id":    payment.OrderId,
		"amount":      purchase.Amount,
	})

	res := &dto.RequestCardPaymentResponse{
		PurchaseId:  purchase.Id,
		OrderId:     payment.OrderId,
		Amount:      purchase.Amount,
		CourseTitle: course.Title,
	}
	if purchase.Discount != nil {
		res.OriginalAmount = &purchase.Discount.OriginalAmount
		res.DiscountAmount = &purchase.Discount.Amount
	}
	return res, nil
}

func (s *paymentService) RequestBankTransfer(ctx context.Context, userId uuid.UUID, req *dto.RequestBankTransferRequest) (*dto.RequestBankTransferResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	purchase, course, err := s.preparePurchase(ctx, uow, userId, req.CourseId, req.CouponCode, buyerInfo{
		Name:  req.BuyerName,
		Email: req.BuyerEmail,
		Phone: req.BuyerPhone,
	})
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		Id:         uuid.New(),
		PurchaseId: purchase.Id,
		OrderId:    checkout.NewBankOrderId(),
		Method:     entity.PaymentMethodBankTransfer,
		Status:     entity.PaymentStatusPending,
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	// The deadline we communicate is ours; the expected date is the buyer's
	// own estimate of when the wire will land.
	deadline := time.Now().AddDate(0, 0, s.deposit.DeadlineDays)
	transfer := &entity.BankTransfer{
		Id:                  uuid.New(),
		PaymentId:           payment.Id,
		DepositorName:       req.DepositorName,
		ExpectedDepositDate: req.ExpectedDepositDate,
		Status:              entity.BankTransferStatusPending,
	}
	if err := uow.BankTransferRepository().Create(ctx, transfer); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PAYMENT", "Bank transfer requested", map[string]interface{}{
		"purchase_id": purchase.Id.String(),
		"order_id":    payment.OrderId,
		"amount":      purchase.Amount,
	})

	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}); err == nil && user != nil {
		s.mailQueue.Enqueue(ctx, dto.EmailMessage{
			Kind:          dto.EmailKindBankInstructions,
			ToEmail:       user.Email,
			CourseTitle:   course.Title,
			OrderId:       payment.OrderId,
			BankName:      s.deposit.BankName,
			AccountNumber: s.deposit.AccountNumber,
			AccountHolder: s.deposit.AccountHolder,
			Amount:        purchase.Amount,
			Deadline:      deadline,
		})
	}

	return &dto.RequestBankTransferResponse{
		PurchaseId:    purchase.Id,
		OrderId:       payment.OrderId,
		Amount:        purchase.Amount,
		BankName:      s.deposit.BankName,
		AccountNumber: s.deposit.AccountNumber,
		AccountHolder: s.deposit.AccountHolder,
		Deadline:      deadline,
	}, nil
}

// ConfirmPayment captures an authorized card payment and completes the
// purchase. The gateway call happens before the local transaction; replays of
// an already-confirmed order return the stored receipt instead of failing.
func (s *paymentService) ConfirmPayment(ctx context.Context, userId uuid.UUID, req *dto.ConfirmPaymentRequest) (*dto.ConfirmPaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindByOrderId(ctx, req.OrderId)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found for order")
	}

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: payment.PurchaseId})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NotFound("purchase not found")
	}
	if purchase.UserId != userId {
		return nil, apperror.Authorization("purchase belongs to another user")
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: purchase.CourseId})
	if err != nil {
		return nil, err
	}
	courseTitle := ""
	if course != nil {
		courseTitle = course.Title
	}

	if purchase.Status == entity.PurchaseStatusCompleted {
		receipt, err := uow.ReceiptRepository().FindByPurchaseId(ctx, purchase.Id)
		if err != nil {
			return nil, err
		}
		res := &dto.ConfirmPaymentResponse{
			PurchaseId: purchase.Id,
			CourseId:   purchase.CourseId,
			CourseName: courseTitle,
			Status:     string(purchase.Status),
			Amount:     purchase.Amount,
		}
		if receipt != nil {
			res.ReceiptNumber = receipt.ReceiptNumber
		}
		return res, nil
	}
	if purchase.Status != entity.PurchaseStatusPending {
		return nil, apperror.Conflict("purchase is not payable")
	}

	if req.Amount != purchase.Amount {
		return nil, apperror.Validation("payment amount does not match purchase amount")
	}

	confirm, err := s.gateway.Confirm(ctx, req.PaymentKey, req.OrderId, req.Amount)
	if err != nil {
		return nil, apperror.External("payment gateway confirmation failed", err)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	if !confirm.ApprovedAt.IsZero() {
		now = confirm.ApprovedAt
	}
	payment.Status = entity.PaymentStatusCompleted
	payment.PaymentKey = &req.PaymentKey
	payment.PaidAt = &now
	payment.GatewayPayload = confirm.RawPayload
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	receipt, err := s.completer.Complete(ctx, uow, purchase)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.PublishPurchaseCompleted(ctx, purchase.Id, purchase.UserId, purchase.CourseId, purchase.Amount, string(entity.PaymentMethodCard))

	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}); err == nil && user != nil {
		s.mailQueue.Enqueue(ctx, dto.EmailMessage{
			Kind:          dto.EmailKindReceipt,
			ToEmail:       user.Email,
			CourseTitle:   courseTitle,
			ReceiptNumber: receipt.ReceiptNumber,
			Amount:        receipt.Amount,
		})
	}

	return &dto.ConfirmPaymentResponse{
		PurchaseId:    purchase.Id,
		CourseId:      purchase.CourseId,
		CourseName:    courseTitle,
		Status:        string(entity.PurchaseStatusCompleted),
		ReceiptNumber: receipt.ReceiptNumber,
		Amount:        purchase.Amount,
	}, nil
}

func (s *paymentService) GetMyPayments(ctx context.Context, userId uuid.UUID) ([]*dto.PaymentHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchases, err := uow.PurchaseRepository().FindAllDetailed(ctx,
		specification.ByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentHistoryItem, 0, len(purchases))
	for _, p := range purchases {
		item := &dto.PaymentHistoryItem{
			PurchaseId:  p.Id,
			Amount:      p.Amount,
			Status:      string(p.Status),
			PurchasedAt: p.CreatedAt,
		}
		if p.Course != nil {
			item.CourseTitle = p.Course.Title
		}
		if p.Discount != nil {
			item.OriginalAmount = &p.Discount.OriginalAmount
			item.DiscountAmount = &p.Discount.Amount
		}
		if p.Payment != nil {
			item.Method = string(p.Payment.Method)
			item.PaidAt = p.Payment.PaidAt
		}
		if p.Receipt != nil {
			item.ReceiptNumber = p.Receipt.ReceiptNumber
		}
		if p.Refund != nil {
			item.RefundStatus = string(p.Refund.Status)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *paymentService) RequestTaxInvoice(ctx context.Context, userId, purchaseId uuid.UUID, req *dto.RequestTaxInvoiceRequest) (*dto.AdminTaxInvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: purchaseId})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NotFound("purchase not found")
	}
	if purchase.UserId != userId {
		return nil, apperror.Authorization("purchase belongs to another user")
	}

	invoice, err := s.taxManager.Request(ctx, uow, purchaseId, req.BusinessName, req.BusinessNumber)
	if err != nil {
		return nil, err
	}

	return &dto.AdminTaxInvoiceResponse{
		Id:             invoice.Id,
		PurchaseId:     invoice.PurchaseId,
		BusinessName:   invoice.BusinessName,
		BusinessNumber: invoice.BusinessNumber,
		Status:         string(invoice.Status),
		RequestedAt:    invoice.RequestedAt,
	}, nil
}
