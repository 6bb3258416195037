package mailer

import (
	"fmt"
	"mime"
	"strings"
	"time"
)

// buildMessage assembles the RFC 5322 message with an HTML body.
func buildMessage(displayName, from, to, subject, htmlBody string) []byte {
	fromHeader := from
	if displayName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", displayName, from)
	}

	var b strings.Builder
	b.WriteString("From: " + fromHeader + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
