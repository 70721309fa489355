package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"event_hub/constants"
	"event_hub/database"
	"event_hub/helper"
	"event_hub/model"
	"event_hub/utils"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateSignature ký tham số upload trực tiếp lên Cloudinary
// (ảnh biên lai, banner sự kiện)
func GenerateSignature(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // Parse but don't sign
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Params không hợp lệ", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	// Collect signable parameters as map (exclude resource_type, api_key, etc.)
	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder // Raw value, no escape
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID // Raw value
	}
	paramMap["timestamp"] = timestampStr // Always include

	// Sort keys alphabetically
	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Build stringToSign manually (raw values, no URL encoding)
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	// Compute SHA1 hash
	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadEventBanner upload banner sự kiện qua server, ảnh cũ bị xoá khỏi Cloudinary
func UploadEventBanner(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(int)
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}
	if event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	file, err := c.FormFile("banner")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file banner", err)
	}

	// Kiểm tra định dạng và kích thước (trước khi mở file)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ hỗ trợ JPG, PNG, WEBP", nil)
	}
	if file.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File vượt quá 5MB", nil)
	}

	f, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể mở file", err)
	}
	defer f.Close()

	cld := helper.InitCloudinary()
	publicID := fmt.Sprintf("event_%d_banner_%d", event.ID, time.Now().UnixNano())
	uploadResult, err := cld.Upload.Upload(c.Context(), f, uploader.UploadParams{
		Folder:       "events/banners",
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload Cloudinary thất bại", err)
	}

	oldBannerId := event.BannerId
	event.Banner = uploadResult.SecureURL
	event.BannerId = uploadResult.PublicID
	if err := db.Save(&event).Error; err != nil {
		// Lưu DB thất bại thì xoá file vừa upload
		cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: uploadResult.PublicID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lưu database thất bại", err)
	}

	if oldBannerId != "" {
		cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: oldBannerId})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"banner": event.Banner,
	})
}
