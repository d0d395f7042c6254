package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"eventuras/internal/domain"
)

// buildMIME renders the message as a multipart/mixed MIME document, used by
// the transports that speak raw RFC 5322 (SMTP and SES raw sends).
func buildMIME(from string, msg *domain.EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	if msg.Text != "" {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/plain; charset=UTF-8"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(msg.Text)); err != nil {
			return nil, err
		}
	}
	if msg.HTML != "" {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/html; charset=UTF-8"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(msg.HTML)); err != nil {
			return nil, err
		}
	}
	if att := msg.Attachment; att != nil {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.Filename)},
		})
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(att.Content)
		if _, err := part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
