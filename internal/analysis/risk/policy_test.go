package risk

import (
	"strings"
	"testing"
)

func TestClassifyHighRiskEmotionsAboveThreshold(t *testing.T) {
	for _, emotion := range []string{"sadness", "fear", "grief"} {
		for _, score := range []float64{0.5000001, 0.51, 0.9, 1} {
			got := Classify(emotion, score)
			if got.Level != High {
				t.Fatalf("Classify(%q, %v) level = %s, want high", emotion, score, got.Level)
			}
			if !strings.Contains(got.Message, "988") {
				t.Fatalf("crisis message must reference 988, got %q", got.Message)
			}
		}
	}
}

func TestClassifyBoundaryIsExclusive(t *testing.T) {
	for _, emotion := range []string{"sadness", "fear", "grief"} {
		if got := Classify(emotion, 0.5); got.Level != Medium {
			t.Fatalf("Classify(%q, 0.5) level = %s, want medium", emotion, got.Level)
		}
	}
}

func TestClassifyOtherEmotionsAreMedium(t *testing.T) {
	cases := []struct {
		emotion string
		score   float64
	}{
		{"neutral", 0.8},
		{"joy", 1},
		{"anger", 0.99},
		{"unknown", 0},
		{"", 0.9},
		{"Sadness", 0.9},
		{" fear", 0.9},
		{"nervousness", 0.7},
	}
	for _, tc := range cases {
		got := Classify(tc.emotion, tc.score)
		if got.Level != Medium {
			t.Fatalf("Classify(%q, %v) level = %s, want medium", tc.emotion, tc.score, got.Level)
		}
		if got.Message != SupportiveMessage {
			t.Fatalf("Classify(%q, %v) returned unexpected message %q", tc.emotion, tc.score, got.Message)
		}
	}
}
