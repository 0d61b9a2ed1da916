package sessionlog_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zhouzirui/support-line/internal/model/support"
	"github.com/zhouzirui/support-line/internal/service/sessionlog"
)

func TestAppendPreservesInsertionOrder(t *testing.T) {
	log := sessionlog.New()
	for i := 0; i < 5; i++ {
		log.Append(support.InteractionRecord{ClientID: "c1", Message: fmt.Sprintf("msg-%d", i), Emotion: "neutral", Score: 0.5})
	}

	records := log.All()
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, record := range records {
		if record.Message != fmt.Sprintf("msg-%d", i) {
			t.Fatalf("record %d out of order: %s", i, record.Message)
		}
		if record.ID == "" || record.Timestamp.IsZero() {
			t.Fatalf("record %d missing id or timestamp: %+v", i, record)
		}
	}

	samples := log.Samples()
	if len(samples) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(samples))
	}
	if samples[2].ClientID != "c1" || samples[2].Timestamp != records[2].Timestamp {
		t.Fatalf("sample does not mirror record: %+v vs %+v", samples[2], records[2])
	}
}

func TestAppendKeepsDuplicates(t *testing.T) {
	log := sessionlog.New()
	record := support.InteractionRecord{ClientID: "c1", Message: "same"}
	log.Append(record)
	log.Append(record)

	if log.Len() != 2 {
		t.Fatalf("expected duplicates to be kept, got %d records", log.Len())
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	log := sessionlog.New()
	log.Append(support.InteractionRecord{Message: "first"})

	snapshot := log.All()
	snapshot[0].Message = "mutated"
	log.Append(support.InteractionRecord{Message: "second"})

	current := log.All()
	if current[0].Message != "first" {
		t.Fatalf("snapshot mutation leaked into log: %s", current[0].Message)
	}
	if len(snapshot) != 1 {
		t.Fatalf("snapshot grew after append: %d", len(snapshot))
	}
}

func TestAppendKeepsProvidedTimestamp(t *testing.T) {
	log := sessionlog.New()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := log.Append(support.InteractionRecord{ID: "fixed", Timestamp: ts})
	if got.ID != "fixed" || !got.Timestamp.Equal(ts) {
		t.Fatalf("provided id/timestamp overwritten: %+v", got)
	}
}

func TestConcurrentAppends(t *testing.T) {
	log := sessionlog.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Append(support.InteractionRecord{Message: fmt.Sprintf("m%d", i)})
			_ = log.All()
		}(i)
	}
	wg.Wait()

	if log.Len() != 50 {
		t.Fatalf("expected 50 records, got %d", log.Len())
	}
}

func TestSubscribeReceivesAppends(t *testing.T) {
	log := sessionlog.New()
	feed, cancel := log.Subscribe()
	defer cancel()

	log.Append(support.InteractionRecord{Message: "hello", ClientID: "c9"})

	select {
	case record := <-feed:
		if record.Message != "hello" || record.ClientID != "c9" {
			t.Fatalf("unexpected record: %+v", record)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed event")
	}
}

func TestSlowSubscriberDoesNotBlockAppend(t *testing.T) {
	log := sessionlog.New()
	_, cancel := log.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			log.Append(support.InteractionRecord{Message: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("append blocked on a full subscriber")
	}
}

func TestCancelClosesFeed(t *testing.T) {
	log := sessionlog.New()
	feed, cancel := log.Subscribe()
	cancel()
	cancel()

	if _, ok := <-feed; ok {
		t.Fatal("expected closed feed after cancel")
	}
	log.Append(support.InteractionRecord{Message: "after cancel"})
}
