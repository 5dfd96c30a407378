package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdFormats(t *testing.T) {
	assert.Regexp(t, `^ORDER_\d+_[a-z0-9]{7}$`, NewOrderId())
	assert.Regexp(t, `^BANK_\d+_[a-z0-9]{7}$`, NewBankOrderId())
	assert.Regexp(t, `^R\d+[A-Z0-9]{5}$`, NewReceiptNumber())
}

func TestIdsAreUniquePerCall(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOrderId()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
