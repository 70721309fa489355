package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// TicketEmailData dữ liệu cho template email vé
type TicketEmailData struct {
	UserName   string
	EventTitle string
	EventDate  string
	EventTime  string
	Location   string
	TicketCode string
	TicketType string
	Quantity   int
	ValidUntil string
	DetailLink string
}

// SendTicketEmail gửi email vé kèm QR PNG (async, lỗi chỉ log)
func SendTicketEmail(to string, data TicketEmailData, qrPNG []byte) {
	go func() {
		tmplPath := "templates/ticket_issued.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Vé sự kiện "+data.EventTitle+" #"+data.TicketCode)
		m.SetBody("text/html", body.String())

		if len(qrPNG) > 0 {
			filename := "Ve_" + data.TicketCode + ".png"
			m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrPNG))
				return err
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email vé: %v", err)
		}
	}()
}
