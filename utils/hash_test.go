package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePayloadFields() map[string]any {
	return map[string]any{
		"ticketId":   "TKT-2026-a1b2c3d4-482913",
		"eventId":    uint(7),
		"userId":     uint(12),
		"bookingId":  uint(33),
		"ticketType": "vip",
		"quantity":   2,
		"issuedAt":   "2026-08-29T10:00:00Z",
		"validUntil": "2026-09-15T10:00:00Z",
		"eventTitle": "Hòa nhạc mùa thu",
		"eventDate":  "2026-09-14",
		"userName":   "Nguyen Van A",
		"userEmail":  "a@example.com",
	}
}

func TestComputeTicketHash_RoundTrip(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	fields := samplePayloadFields()
	hash, err := ComputeTicketHash(fields)
	assert.NoError(t, err)
	assert.Len(t, hash, 64) // hex của SHA256

	ok, err := VerifyTicketHash(fields, hash)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestComputeTicketHash_Deterministic(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	first, err := ComputeTicketHash(samplePayloadFields())
	assert.NoError(t, err)
	second, err := ComputeTicketHash(samplePayloadFields())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVerifyTicketHash_AnyFieldFlipped(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	original := samplePayloadFields()
	hash, err := ComputeTicketHash(original)
	assert.NoError(t, err)

	tampered := map[string]any{
		"ticketId":   "TKT-2026-ffffffff-000000",
		"eventId":    uint(8),
		"userId":     uint(13),
		"bookingId":  uint(34),
		"ticketType": "regular",
		"quantity":   5,
		"issuedAt":   "2026-08-29T11:00:00Z",
		"validUntil": "2026-10-15T10:00:00Z",
		"eventTitle": "Sự kiện khác",
		"eventDate":  "2026-10-14",
		"userName":   "Tran Thi B",
		"userEmail":  "b@example.com",
	}

	for key, badValue := range tampered {
		fields := samplePayloadFields()
		fields[key] = badValue

		ok, err := VerifyTicketHash(fields, hash)
		assert.NoError(t, err)
		assert.False(t, ok, "đổi trường %q mà hash vẫn khớp", key)
	}
}

func TestVerifyTicketHash_MalformedCandidate(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	ok, err := VerifyTicketHash(samplePayloadFields(), "không phải hex")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTicketHash_FailClosedWithoutSecret(t *testing.T) {
	t.Setenv("TICKET_SECRET", "")

	_, err := ComputeTicketHash(samplePayloadFields())
	assert.ErrorIs(t, err, ErrNoTicketSecret)

	_, err = VerifyTicketHash(samplePayloadFields(), strings.Repeat("a", 64))
	assert.ErrorIs(t, err, ErrNoTicketSecret)
}

func TestCanonicalJSON_StableKeyOrder(t *testing.T) {
	data, err := CanonicalJSON(map[string]any{"b": 2, "a": 1, "c": 3})
	assert.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
}
