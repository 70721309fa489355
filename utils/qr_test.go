package utils

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQRCode_ProducesPNG(t *testing.T) {
	raw, err := GenerateQRCode(`{"ticketId":"TKT-2026-a1b2c3d4-482913"}`, 256)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestGenerateQRCodeBase64_Decodable(t *testing.T) {
	encoded, err := GenerateQRCodeBase64("hello", 128)
	assert.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}

func TestGenerateQRCode_EmptyContentFails(t *testing.T) {
	_, err := GenerateQRCode("", 256)
	assert.Error(t, err)
}
