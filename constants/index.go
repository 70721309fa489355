package constants

const (
	ERROR_INPUT              = "Dữ liệu đầu vào không hợp lệ"
	DATA_INPUT_IS_NOT_NUMBER = "Tham số phải là số"
	NOT_ADMIN                = "Không có quyền truy cập"
	NOT_OWNER                = "Bạn không phải người tổ chức sự kiện này"
	NOT_FOUND                = "Không tìm thấy dữ liệu"
	INTERNAL_ERROR           = "Lỗi hệ thống"

	EVENT_NOT_FOUND   = "Sự kiện không tồn tại"
	EVENT_FULL        = "Sự kiện đã hết chỗ"
	BOOKING_NOT_FOUND = "Đặt chỗ không tồn tại"
	RECEIPT_NOT_FOUND = "Biên lai thanh toán không tồn tại"
	RECEIPT_EXISTS    = "Đặt chỗ này đã có biên lai thanh toán"
	TICKET_NOT_FOUND  = "Vé không tồn tại"
	TICKET_EXISTS     = "Biên lai này đã được phát hành vé"
	TICKET_USED       = "Vé đã được sử dụng"
	TICKET_INVALID    = "Vé không hợp lệ"
	HASH_INVALID      = "Xác thực bảo mật thất bại"
)
