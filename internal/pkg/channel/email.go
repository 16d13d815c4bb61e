package channel

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hxlane/rental_go_server/config"
)

// EmailSender 通过 SMTP 发送 HTML 通知邮件
type EmailSender struct {
	cfg *config.EmailConfig
}

func NewEmailSender(cfg *config.EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send 发送通知邮件，dest 为收件人邮箱
func (s *EmailSender) Send(ctx context.Context, dest, subject, message string) error {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">%s</h2>
        <p>%s</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically by the rental platform. Please do not reply.</p>
    </div>
</body>
</html>
`, subject, message)

	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = dest
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	// net/smtp 不接受 context，超时由 Dispatcher 的 ctx 约束发送协程之外的行为
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{dest}, []byte(msg.String()))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
