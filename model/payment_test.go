package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReceiptTransition_FromPending(t *testing.T) {
	receipt := &PaymentReceipt{Status: ReceiptPending}
	assert.NoError(t, receipt.Transition(ReceiptConfirmed))
	assert.Equal(t, ReceiptConfirmed, receipt.Status)

	receipt = &PaymentReceipt{Status: ReceiptPending}
	assert.NoError(t, receipt.Transition(ReceiptRejected))
	assert.Equal(t, ReceiptRejected, receipt.Status)
}

func TestReceiptTransition_OneDirectional(t *testing.T) {
	// confirmed và rejected là trạng thái cuối
	for _, terminal := range []string{ReceiptConfirmed, ReceiptRejected} {
		for _, next := range []string{ReceiptPending, ReceiptConfirmed, ReceiptRejected} {
			receipt := &PaymentReceipt{Status: terminal}
			assert.Error(t, receipt.Transition(next), "%s -> %s", terminal, next)
			assert.Equal(t, terminal, receipt.Status)
		}
	}
}

func TestReceiptTransition_InvalidTarget(t *testing.T) {
	receipt := &PaymentReceipt{Status: ReceiptPending}
	assert.Error(t, receipt.Transition("refunded"))
	assert.Equal(t, ReceiptPending, receipt.Status)
}
