package notify

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
)

type recordingSink struct {
	subjects []string
	err      error
}

func (r *recordingSink) Notify(subject, body string) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func TestMulti_DeliversToAllSinks(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}

	m := NewMulti(a, b)
	if err := m.Notify("hello", "world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.subjects) != 1 || len(b.subjects) != 1 {
		t.Errorf("expected one delivery per sink, got %d/%d", len(a.subjects), len(b.subjects))
	}
}

func TestMulti_OneFailingSinkDoesNotStopOthers(t *testing.T) {
	failing := &recordingSink{err: errors.New("down")}
	healthy := &recordingSink{}

	m := NewMulti(failing, healthy)
	if err := m.Notify("subject", "body"); err != nil {
		t.Fatalf("expected best-effort nil error, got %v", err)
	}

	if len(healthy.subjects) != 1 {
		t.Errorf("expected healthy sink to receive the message")
	}
}

func TestDiscordSender_PostsContentPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewDiscordSender(srv.URL)
	if err := sender.Notify("Batch Complete", "2 videos scheduled"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, ok := got["content"]
	if !ok {
		t.Fatalf("expected content key in payload, got %v", got)
	}
	if !strings.Contains(content, "Batch Complete") || !strings.Contains(content, "2 videos scheduled") {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestDiscordSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sender := NewDiscordSender(srv.URL)
	if err := sender.Notify("subject", "body"); err == nil {
		t.Errorf("expected error for 4xx response")
	}
}

func TestSMTPSender_BuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	original := sendMail
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}
	defer func() { sendMail = original }()

	sender := NewSMTPSender("smtp.example.com", 465, "user", "pass", "bot@example.com", "admin@example.com")
	if err := sender.Notify("Upload Failure", "something broke"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAddr != "smtp.example.com:465" {
		t.Errorf("unexpected addr: %s", gotAddr)
	}
	if gotFrom != "bot@example.com" || len(gotTo) != 1 || gotTo[0] != "admin@example.com" {
		t.Errorf("unexpected envelope: from=%s to=%v", gotFrom, gotTo)
	}

	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: [reshort] Upload Failure") {
		t.Errorf("expected prefixed subject, got %q", msg)
	}
	if !strings.Contains(msg, "something broke") {
		t.Errorf("expected body in message, got %q", msg)
	}
}
