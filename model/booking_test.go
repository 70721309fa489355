package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketBreakdown_ValueAndScan(t *testing.T) {
	breakdown := TicketBreakdown{
		{Type: TicketTypeVIP, Quantity: 2, Price: 500000},
		{Type: TicketTypeRegular, Quantity: 1, Price: 150000},
	}

	value, err := breakdown.Value()
	assert.NoError(t, err)

	var decoded TicketBreakdown
	assert.NoError(t, decoded.Scan(value))
	assert.Equal(t, breakdown, decoded)
}

func TestTicketBreakdown_ScanString(t *testing.T) {
	var decoded TicketBreakdown
	assert.NoError(t, decoded.Scan(`[{"type":"vvip","quantity":3,"price":1000000}]`))
	assert.Len(t, decoded, 1)
	assert.Equal(t, TicketTypeVVIP, decoded[0].Type)
	assert.Equal(t, 3, decoded[0].Quantity)
}

func TestTicketBreakdown_NilValue(t *testing.T) {
	var breakdown TicketBreakdown
	value, err := breakdown.Value()
	assert.NoError(t, err)
	assert.Nil(t, value)

	var decoded TicketBreakdown
	assert.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestTicketBreakdown_ScanUnsupportedType(t *testing.T) {
	var decoded TicketBreakdown
	assert.Error(t, decoded.Scan(42))
}
