package notification

import (
	"bytes"
	"mime"
	"net/mail"
	"strings"
	"testing"
	"time"
)

func TestBuildMessage_Multipart(t *testing.T) {
	raw, err := buildMessage("noreply@example.com", &Message{
		To:      "ada@example.com",
		Subject: "Your booking is confirmed - Intro Call",
		Text:    "line one\nline two",
		HTML:    "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}

	msg := string(raw)
	for _, want := range []string{
		"From: <noreply@example.com>\r\n",
		"To: <ada@example.com>\r\n",
		"Subject: Your booking is confirmed - Intro Call\r\n",
		"Content-Type: multipart/alternative;",
		"Content-Type: text/plain; charset=utf-8\r\n\r\nline one\r\nline two\r\n",
		"Content-Type: text/html; charset=utf-8\r\n\r\n<p>hi</p>\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildMessage_TitleCannotInjectHeaders(t *testing.T) {
	job := testJob()
	job.PageTitle = "Café Intro\r\nBcc: victim@example.com"

	rendered, err := NewRenderer(time.UTC, "").Render(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	raw, err := buildMessage("noreply@example.com", rendered)
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if bcc := parsed.Header.Get("Bcc"); bcc != "" {
		t.Fatalf("title injected a Bcc header: %q", bcc)
	}

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	if err != nil {
		t.Fatalf("decode subject: %v", err)
	}
	if subject != "Your booking is confirmed - Café Intro Bcc: victim@example.com" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

func TestBuildMessage_RejectsMalformedRecipient(t *testing.T) {
	_, err := buildMessage("noreply@example.com", &Message{
		To:      "ada@example.com\r\nBcc: victim@example.com",
		Subject: "hi",
		Text:    "body",
	})
	if err == nil {
		t.Fatal("expected malformed recipient to be rejected")
	}
}
