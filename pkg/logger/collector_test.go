package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topic   string
	batches []LogBatch
}

func (p *recordingPublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.(LogBatch))
	return nil
}

func (p *recordingPublisher) snapshot() (string, []LogBatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.topic, append([]LogBatch(nil), p.batches...)
}

func TestCollectorDeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		Service:      "brentdash",
		TimeInterval: time.Hour,
		Topic:        "brentdash-logs",
		Publisher:    pub,
	})

	fields := map[string]interface{}{"endpoint": "prices"}
	c.AddLog("error", "fetch failed", fields, "view/dashboard.go:10")
	c.AddLog("error", "fetch failed", map[string]interface{}{"endpoint": "prices"}, "view/dashboard.go:10")
	c.AddLog("error", "fetch failed", map[string]interface{}{"endpoint": "events"}, "view/dashboard.go:10")
	assert.Equal(t, 2, c.Pending())

	c.Close()

	topic, batches := pub.snapshot()
	assert.Equal(t, "brentdash-logs", topic)
	require.Len(t, batches, 1)
	assert.Equal(t, "brentdash", batches[0].Service)
	require.Len(t, batches[0].Entries, 2)

	counts := map[interface{}]int{}
	for _, e := range batches[0].Entries {
		counts[e.Fields["endpoint"]] = e.Count
	}
	assert.Equal(t, 2, counts["prices"])
	assert.Equal(t, 1, counts["events"])
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "a", nil, "x")
	c.AddLog("error", "b", nil, "x")
	assert.Zero(t, c.Pending())

	assert.Eventually(t, func() bool {
		_, batches := pub.snapshot()
		return len(batches) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLoggerErrorFeedsCollector(t *testing.T) {
	l := NewNop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour})
	defer l.RemoveCollector()

	child := l.With(String("request_id", "r1"))
	child.Error("render failed", String("chart", "price"))
	l.Info("ignored")

	assert.Equal(t, 1, l.collector.Pending())
}
