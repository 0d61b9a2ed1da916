package support

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/zhouzirui/support-line/internal/analysis/risk"
	"github.com/zhouzirui/support-line/internal/service/sessionlog"
)

type fixedClassifier struct {
	label string
	score float64
	texts []string
}

func (f *fixedClassifier) Classify(_ context.Context, text string) (string, float64) {
	f.texts = append(f.texts, text)
	return f.label, f.score
}

func TestHandleHighRiskRecordsInteraction(t *testing.T) {
	classifier := &fixedClassifier{label: "sadness", score: 0.9}
	svc := NewService(classifier, sessionlog.New(), nil, nil)

	resp, record := svc.Handle(context.Background(), "I feel hopeless", "c1")

	if resp.RiskLevel != risk.High || !strings.Contains(resp.Message, "988") {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(classifier.texts) != 1 || classifier.texts[0] != "I feel hopeless" {
		t.Fatalf("classifier not called with message: %v", classifier.texts)
	}

	records := svc.Log().All()
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	got := records[0]
	if got.ClientID != "c1" || got.Emotion != "sadness" || got.Score != 0.9 || got.Response != resp.Message {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.ID != record.ID {
		t.Fatalf("returned record does not match stored record")
	}
	if len(svc.Log().Samples()) != 1 {
		t.Fatal("expected one emotion sample")
	}
}

func TestHandleDefaultsClientID(t *testing.T) {
	svc := NewService(&fixedClassifier{label: "neutral", score: 0.8}, sessionlog.New(), nil, nil)

	resp, record := svc.Handle(context.Background(), "I had a fine day", "  ")
	if resp.RiskLevel != risk.Medium {
		t.Fatalf("expected medium risk, got %s", resp.RiskLevel)
	}
	if record.ClientID != "unknown" {
		t.Fatalf("expected unknown client id, got %q", record.ClientID)
	}
}

func TestHandleSequentialRequestsKeepOrder(t *testing.T) {
	svc := NewService(&fixedClassifier{label: "joy", score: 0.7}, sessionlog.New(), nil, nil)
	const n = 10
	for i := 0; i < n; i++ {
		svc.Handle(context.Background(), fmt.Sprintf("message %d", i), "c1")
	}

	records := svc.Log().All()
	if len(records) != n {
		t.Fatalf("expected %d records, got %d", n, len(records))
	}
	for i, record := range records {
		if record.Message != fmt.Sprintf("message %d", i) {
			t.Fatalf("record %d out of order: %s", i, record.Message)
		}
	}
}
