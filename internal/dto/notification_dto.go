package dto

import "time"

// EmailMessage travels over the in-process queue from the commerce services
// to the mail worker.
type EmailMessage struct {
	Kind          string    `json:"kind"` // receipt | bank_instructions | refund_completed | refund_rejected
	ToEmail       string    `json:"to_email"`
	CourseTitle   string    `json:"course_title"`
	ReceiptNumber string    `json:"receipt_number,omitempty"`
	Amount        int       `json:"amount,omitempty"`
	OrderId       string    `json:"order_id,omitempty"`
	BankName      string    `json:"bank_name,omitempty"`
	AccountNumber string    `json:"account_number,omitempty"`
	AccountHolder string    `json:"account_holder,omitempty"`
	Deadline      time.Time `json:"deadline,omitempty"`
	Reason        string    `json:"reason,omitempty"`
}

const (
	EmailKindReceipt          = "receipt"
	EmailKindBankInstructions = "bank_instructions"
	EmailKindRefundCompleted  = "refund_completed"
	EmailKindRefundRejected   = "refund_rejected"
)
