package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
)

var ErrNoTicketSecret = errors.New("TICKET_SECRET is not configured")

// CanonicalJSON serialize payload với key đã sắp xếp.
// encoding/json luôn sort key của map nên output ổn định.
func CanonicalJSON(fields map[string]any) ([]byte, error) {
	return json.Marshal(fields)
}

// ComputeTicketHash ký HMAC-SHA256 trên payload canonical (không gồm trường hash).
// Không có secret thì từ chối ký, không fallback.
func ComputeTicketHash(fields map[string]any) (string, error) {
	secret := os.Getenv("TICKET_SECRET")
	if secret == "" {
		return "", ErrNoTicketSecret
	}
	data, err := CanonicalJSON(fields)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// VerifyTicketHash so sánh constant-time, candidate sai định dạng coi như sai chữ ký
func VerifyTicketHash(fields map[string]any, candidate string) (bool, error) {
	secret := os.Getenv("TICKET_SECRET")
	if secret == "" {
		return false, ErrNoTicketSecret
	}
	data, err := CanonicalJSON(fields)
	if err != nil {
		return false, err
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	expected := mac.Sum(nil)

	candidateBytes, err := hex.DecodeString(candidate)
	if err != nil {
		return false, nil
	}
	return hmac.Equal(expected, candidateBytes), nil
}
