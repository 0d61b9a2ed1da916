package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zhouzirui/support-line/internal/analysis/risk"
	"github.com/zhouzirui/support-line/internal/client"
	model "github.com/zhouzirui/support-line/internal/model/support"
)

func TestParseHostPort(t *testing.T) {
	cases := []struct {
		raw     string
		host    string
		port    int
		wantErr bool
	}{
		{raw: "localhost:5000", host: "localhost", port: 5000},
		{raw: ":8080", host: "localhost", port: 8080},
		{raw: " 10.0.0.2:80 ", host: "10.0.0.2", port: 80},
		{raw: "", wantErr: true},
		{raw: "localhost", wantErr: true},
		{raw: "localhost:abc", wantErr: true},
		{raw: "localhost:0", wantErr: true},
	}

	for _, tc := range cases {
		host, port, err := parseHostPort(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseHostPort(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil || host != tc.host || port != tc.port {
			t.Errorf("parseHostPort(%q) = %q, %d, %v", tc.raw, host, port, err)
		}
	}
}

func TestSessionWithoutServerPromptsToConnect(t *testing.T) {
	var out strings.Builder
	s := newSession(client.New("", nil), &out, nil)

	if err := s.run(context.Background(), strings.NewReader("hello\n/history\n/quit\n")); err != nil {
		t.Fatalf("run err: %v", err)
	}

	text := out.String()
	for _, want := range []string{"988", "not connected", "Please connect to a server first", "No messages yet."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSessionShowsCrisisWarning(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Message == "bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(model.Response{Message: risk.CrisisMessage, RiskLevel: risk.High})
	}))
	defer ts.Close()

	var out strings.Builder
	c := client.New(ts.URL, nil)
	s := newSession(c, &out, nil)

	if err := s.run(context.Background(), strings.NewReader("I feel hopeless\nbad\n/quit\n")); err != nil {
		t.Fatalf("run err: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, client.CrisisWarning) {
		t.Fatalf("expected crisis warning:\n%s", text)
	}
	if !strings.Contains(text, "Server returned status code 500") {
		t.Fatalf("expected inline status error:\n%s", text)
	}
	if got := len(c.Transcript()); got != 2 {
		t.Fatalf("expected 2 turns after one success and one failure, got %d", got)
	}
}
