package helper

import (
	"encoding/json"
	"event_hub/model"
	"event_hub/utils"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTicketCode_Format(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 30, 0, 482913000, time.UTC)
	code := GenerateTicketCode(now)

	pattern := regexp.MustCompile(`^TKT-2026-[0-9a-f]{8}-\d{6}$`)
	assert.Regexp(t, pattern, code)
}

func TestGenerateTicketCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	now := time.Now()
	for i := 0; i < 100; i++ {
		code := GenerateTicketCode(now)
		assert.False(t, seen[code], "mã vé trùng: %s", code)
		seen[code] = true
	}
}

func TestDeriveTicketDetails_WithBreakdown(t *testing.T) {
	// Bảng kê có dòng đầu vip x2 thì vé là vip x2
	booking := &model.Booking{
		Seats: 5,
		TicketBreakdown: model.TicketBreakdown{
			{Type: model.TicketTypeVIP, Quantity: 2, Price: 500000},
			{Type: model.TicketTypeRegular, Quantity: 3, Price: 150000},
		},
	}

	ticketType, quantity := DeriveTicketDetails(booking)
	assert.Equal(t, model.TicketTypeVIP, ticketType)
	assert.Equal(t, 2, quantity)
}

func TestDeriveTicketDetails_NoBreakdown(t *testing.T) {
	// Không có bảng kê thì regular với đúng số ghế
	booking := &model.Booking{Seats: 3}

	ticketType, quantity := DeriveTicketDetails(booking)
	assert.Equal(t, model.TicketTypeRegular, ticketType)
	assert.Equal(t, 3, quantity)
}

func TestDeriveTicketDetails_MinimumOne(t *testing.T) {
	booking := &model.Booking{Seats: 0}

	ticketType, quantity := DeriveTicketDetails(booking)
	assert.Equal(t, model.TicketTypeRegular, ticketType)
	assert.Equal(t, 1, quantity)
}

func TestDeriveTicketDetails_EmptyBreakdownEntry(t *testing.T) {
	booking := &model.Booking{
		Seats:           2,
		TicketBreakdown: model.TicketBreakdown{{Type: "", Quantity: 0}},
	}

	ticketType, quantity := DeriveTicketDetails(booking)
	assert.Equal(t, model.TicketTypeRegular, ticketType)
	assert.Equal(t, 2, quantity)
}

func TestComputeValidityWindow_FromEventDate(t *testing.T) {
	event := &model.Event{Date: "2026-09-14"}
	issuedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	validFrom, validUntil := ComputeValidityWindow(event, issuedAt)
	assert.Equal(t, issuedAt, validFrom)

	eventDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, eventDate.Add(24*time.Hour), validUntil)
}

func TestComputeValidityWindow_BadDateFallback(t *testing.T) {
	issuedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	// Ngày thiếu hoặc hỏng: validUntil = phát hành + 30 ngày + 24h, không crash
	for _, date := range []string{"", "không rõ", "31-31-2026"} {
		event := &model.Event{Date: date}
		validFrom, validUntil := ComputeValidityWindow(event, issuedAt)
		assert.Equal(t, issuedAt, validFrom)
		assert.Equal(t, issuedAt.Add(FallbackEventWindow).Add(ValidityGrace), validUntil, "date=%q", date)
	}
}

func payloadFixture(t *testing.T) (model.TicketPayload, *model.Event, *model.User, *model.Booking) {
	t.Helper()

	event := &model.Event{
		DTO:   model.DTO{ID: 7},
		Title: "Hòa nhạc mùa thu",
		Date:  "2026-09-14",
	}
	user := &model.User{
		DTO:   model.DTO{ID: 12},
		Name:  "Nguyen Van A",
		Email: "a@example.com",
	}
	booking := &model.Booking{DTO: model.DTO{ID: 33}}

	issuedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	validUntil := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	payload, err := BuildTicketPayload("TKT-2026-a1b2c3d4-482913", model.TicketTypeVIP, 2,
		issuedAt, validUntil, event, user, booking)
	assert.NoError(t, err)
	return payload, event, user, booking
}

func TestBuildTicketPayload_FieldsAndHash(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	payload, event, user, booking := payloadFixture(t)

	assert.Equal(t, "TKT-2026-a1b2c3d4-482913", payload.TicketId)
	assert.Equal(t, event.ID, payload.EventId)
	assert.Equal(t, user.ID, payload.UserId)
	assert.Equal(t, booking.ID, payload.BookingId)
	assert.Equal(t, model.TicketTypeVIP, payload.TicketType)
	assert.Equal(t, 2, payload.Quantity)
	assert.Equal(t, "2026-08-29T10:00:00Z", payload.IssuedAt)
	assert.Equal(t, "2026-09-15T00:00:00Z", payload.ValidUntil)
	assert.NotEmpty(t, payload.Hash)

	ok, err := utils.VerifyTicketHash(payload.CanonicalMap(), payload.Hash)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildTicketPayload_FailsWithoutSecret(t *testing.T) {
	t.Setenv("TICKET_SECRET", "")

	event := &model.Event{DTO: model.DTO{ID: 1}, Date: "2026-09-14"}
	user := &model.User{DTO: model.DTO{ID: 2}}
	booking := &model.Booking{DTO: model.DTO{ID: 3}}

	_, err := BuildTicketPayload("TKT-2026-a1b2c3d4-482913", model.TicketTypeRegular, 1,
		time.Now(), time.Now().Add(time.Hour), event, user, booking)
	assert.ErrorIs(t, err, utils.ErrNoTicketSecret)
}

// Payload bị sửa số lượng nhưng giữ hash cũ phải rớt ngay ở bước kiểm tra
// chữ ký, không bao giờ tới bước tìm vé
func TestScannedPayload_TamperedQuantityRejected(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	payload, _, _, _ := payloadFixture(t)

	// Giả lập client: serialize đủ 13 trường rồi parse lại như handler nhận
	wire, err := utils.CanonicalJSON(payloadWithHash(payload))
	assert.NoError(t, err)

	var scanned map[string]any
	assert.NoError(t, json.Unmarshal(wire, &scanned))

	scanned["quantity"] = 10 // sửa số lượng, giữ hash gốc

	candidate, _ := scanned["hash"].(string)
	fields := make(map[string]any, len(scanned))
	for k, v := range scanned {
		if k == "hash" {
			continue
		}
		fields[k] = v
	}

	ok, err := utils.VerifyTicketHash(fields, candidate)
	assert.NoError(t, err)
	assert.False(t, ok)
}

// Payload nguyên vẹn đi qua JSON round-trip vẫn verify được dù kiểu số
// đã thành float64
func TestScannedPayload_UntamperedVerifies(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	payload, _, _, _ := payloadFixture(t)

	wire, err := utils.CanonicalJSON(payloadWithHash(payload))
	assert.NoError(t, err)

	var scanned map[string]any
	assert.NoError(t, json.Unmarshal(wire, &scanned))

	candidate, _ := scanned["hash"].(string)
	fields := make(map[string]any, len(scanned))
	for k, v := range scanned {
		if k == "hash" {
			continue
		}
		fields[k] = v
	}

	ok, err := utils.VerifyTicketHash(fields, candidate)
	assert.NoError(t, err)
	assert.True(t, ok, "payload nguyên vẹn phải verify được")
}

func TestPayloadWithHash_ThirteenFields(t *testing.T) {
	t.Setenv("TICKET_SECRET", "test-secret")

	payload, _, _, _ := payloadFixture(t)
	fields := payloadWithHash(payload)
	assert.Len(t, fields, 13)
	assert.Equal(t, payload.Hash, fields["hash"])
}
