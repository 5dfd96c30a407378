package dto

import (
	"time"

	"github.com/google/uuid"
)

type RequestCardPaymentRequest struct {
	CourseId   uuid.UUID `json:"course_id" validate:"required"`
	BuyerName  string    `json:"buyer_name" validate:"required,min=1,max=100"`
	BuyerEmail string    `json:"buyer_email" validate:"required,email"`
	BuyerPhone string    `json:"buyer_phone" validate:"required,min=9,max=20"`
	CouponCode string    `json:"coupon_code"`
}

type RequestCardPaymentResponse struct {
	PurchaseId     uuid.UUID `json:"purchase_id"`
	OrderId        string    `json:"order_id"`
	Amount         int       `json:"amount"`
	OriginalAmount *int      `json:"original_amount,omitempty"`
	DiscountAmount *int      `json:"discount_amount,omitempty"`
	CourseTitle    string    `json:"course_title"`
}

type ConfirmPaymentRequest struct {
	PaymentKey string `json:"payment_key" validate:"required"`
	OrderId    string `json:"order_id" validate:"required"`
	Amount     int    `json:"amount" validate:"required,gt=0"`
}

type ConfirmPaymentResponse struct {
	PurchaseId    uuid.UUID `json:"purchase_id"`
	CourseId      uuid.UUID `json:"course_id"`
	CourseName    string    `json:"course_name"`
	Status        string    `json:"status"`
	ReceiptNumber string    `json:"receipt_number"`
	Amount        int       `json:"amount"`
}

type RequestBankTransferRequest struct {
	CourseId            uuid.UUID `json:"course_id" validate:"required"`
	BuyerName           string    `json:"buyer_name" validate:"required,min=1,max=100"`
	BuyerEmail          string    `json:"buyer_email" validate:"required,email"`
	BuyerPhone          string    `json:"buyer_phone" validate:"required,min=9,max=20"`
	CouponCode          string    `json:"coupon_code"`
	DepositorName       string    `json:"depositor_name" validate:"required,min=1,max=100"`
	ExpectedDepositDate time.Time `json:"expected_deposit_date" validate:"required"`
}

type RequestBankTransferResponse struct {
	PurchaseId    uuid.UUID `json:"purchase_id"`
	OrderId       string    `json:"order_id"`
	Amount        int       `json:"amount"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	AccountHolder string    `json:"account_holder"`
	Deadline      time.Time `json:"deadline"`
}

// PaymentHistoryItem is one row of the customer's payment list.
type PaymentHistoryItem struct {
	PurchaseId     uuid.UUID  `json:"purchase_id"`
	CourseTitle    string     `json:"course_title"`
	Amount         int        `json:"amount"`
	OriginalAmount *int       `json:"original_amount,omitempty"`
	DiscountAmount *int       `json:"discount_amount,omitempty"`
	Status         string     `json:"status"`
	Method         string     `json:"method,omitempty"`
	ReceiptNumber  string     `json:"receipt_number,omitempty"`
	RefundStatus   string     `json:"refund_status,omitempty"`
	PurchasedAt    time.Time  `json:"purchased_at"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}

type RequestTaxInvoiceRequest struct {
	BusinessName   string `json:"business_name" validate:"required,min=1,max=255"`
	BusinessNumber string `json:"business_number" validate:"required,min=10,max=30"`
}
