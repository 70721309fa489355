package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeTicket(validFrom, validUntil time.Time) *Ticket {
	return &Ticket{
		TicketCode: "TKT-2026-a1b2c3d4-482913",
		Status:     TicketActive,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
}

func TestTicketIsValid_WindowBoundariesInclusive(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	ticket := activeTicket(from, until)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"trước validFrom", from.Add(-time.Second), false},
		{"đúng validFrom", from, true},
		{"giữa khoảng", from.Add(24 * time.Hour), true},
		{"đúng validUntil", until, true},
		{"sau validUntil", until.Add(time.Second), false},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, ticket.IsValid(test.now), test.name)
	}
}

func TestTicketIsValid_RequiresActiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	for _, status := range []string{TicketUsed, TicketCancelled, TicketExpired} {
		ticket := activeTicket(now.Add(-time.Hour), now.Add(time.Hour))
		ticket.Status = status
		assert.False(t, ticket.IsValid(now), status)
	}
}

func TestTicketTransition_FromActive(t *testing.T) {
	for _, next := range []string{TicketUsed, TicketCancelled, TicketExpired} {
		ticket := &Ticket{Status: TicketActive}
		assert.NoError(t, ticket.Transition(next))
		assert.Equal(t, next, ticket.Status)
	}
}

func TestTicketTransition_TerminalStatesRejectEverything(t *testing.T) {
	for _, terminal := range []string{TicketUsed, TicketCancelled, TicketExpired} {
		for _, next := range []string{TicketActive, TicketUsed, TicketCancelled, TicketExpired} {
			ticket := &Ticket{Status: terminal}
			assert.Error(t, ticket.Transition(next), "%s -> %s", terminal, next)
			assert.Equal(t, terminal, ticket.Status)
		}
	}
}

func TestTicketTransition_UsedIsOneWay(t *testing.T) {
	ticket := &Ticket{Status: TicketActive}
	assert.NoError(t, ticket.Transition(TicketUsed))

	// Quét lần hai luôn bị từ chối
	assert.Error(t, ticket.Transition(TicketUsed))
	assert.Equal(t, TicketUsed, ticket.Status)
}

func TestTicketTransition_InvalidTarget(t *testing.T) {
	ticket := &Ticket{Status: TicketActive}
	assert.Error(t, ticket.Transition("refunded"))
	assert.Equal(t, TicketActive, ticket.Status)
}

func TestTicketPayload_CanonicalMapExcludesHash(t *testing.T) {
	payload := TicketPayload{
		TicketId:   "TKT-2026-a1b2c3d4-482913",
		EventId:    7,
		UserId:     12,
		BookingId:  33,
		TicketType: "vip",
		Quantity:   2,
		IssuedAt:   "2026-08-29T10:00:00Z",
		ValidUntil: "2026-09-15T10:00:00Z",
		EventTitle: "Hòa nhạc mùa thu",
		EventDate:  "2026-09-14",
		UserName:   "Nguyen Van A",
		UserEmail:  "a@example.com",
		Hash:       "deadbeef",
	}

	fields := payload.CanonicalMap()
	assert.NotContains(t, fields, "hash")
	assert.Len(t, fields, 12)
	assert.Equal(t, "vip", fields["ticketType"])
	assert.Equal(t, 2, fields["quantity"])
}
