package sessionlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/support-line/internal/model/support"
)

// feedBuffer 是每个订阅者的缓冲深度，写满后新事件被丢弃而不是阻塞追加。
const feedBuffer = 32

// Log is the process-lifetime, append-only interaction history. It has no
// eviction and no size cap, so memory grows with every accepted request for as
// long as the receiver runs.
type Log struct {
	mu          sync.RWMutex
	records     []support.InteractionRecord
	samples     []support.EmotionSample
	subscribers map[int]chan support.InteractionRecord
	nextSubID   int
}

// New bootstraps an empty log.
func New() *Log {
	return &Log{
		records:     make([]support.InteractionRecord, 0, 64),
		samples:     make([]support.EmotionSample, 0, 64),
		subscribers: make(map[int]chan support.InteractionRecord),
	}
}

// Append stores the record and its chart sample, then notifies subscribers.
// Records without an ID or timestamp get one assigned.
func (l *Log) Append(record support.InteractionRecord) support.InteractionRecord {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	l.samples = append(l.samples, record.Sample())
	for _, ch := range l.subscribers {
		select {
		case ch <- record:
		default:
		}
	}
	return record
}

// All returns a copy of the records in insertion order.
func (l *Log) All() []support.InteractionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]support.InteractionRecord, len(l.records))
	copy(copied, l.records)
	return copied
}

// Samples returns a copy of the emotion samples in insertion order.
func (l *Log) Samples() []support.EmotionSample {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]support.EmotionSample, len(l.samples))
	copy(copied, l.samples)
	return copied
}

// Len returns the number of stored records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Subscribe registers a live feed of newly appended records. The returned
// cancel func unregisters and closes the channel; it is safe to call twice.
func (l *Log) Subscribe() (<-chan support.InteractionRecord, func()) {
	ch := make(chan support.InteractionRecord, feedBuffer)

	l.mu.Lock()
	id := l.nextSubID
	l.nextSubID++
	l.subscribers[id] = ch
	l.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subscribers, id)
			l.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
