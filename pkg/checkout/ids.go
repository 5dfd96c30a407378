package checkout

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func randomString(charset string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(charset[rand.Intn(len(charset))])
	}
	return sb.String()
}

// NewOrderId builds a gateway order reference for card payments,
// unique per attempt.
func NewOrderId() string {
	return fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(), randomString(lowerAlnum, 7))
}

// NewBankOrderId builds an order reference for bank-transfer purchases. The
// distinct prefix keeps manual deposits recognizable in reconciliation.
func NewBankOrderId() string {
	return fmt.Sprintf("BANK_%d_%s", time.Now().UnixMilli(), randomString(lowerAlnum, 7))
}

// NewReceiptNumber builds a customer-facing receipt number.
func NewReceiptNumber() string {
	return fmt.Sprintf("R%d%s", time.Now().UnixMilli(), randomString(upperAlnum, 5))
}
