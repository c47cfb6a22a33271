package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type call struct {
	kind  string
	name  string
	value float64
	tags  []string
}

// MockProvider para verificar chamadas
type MockProvider struct {
	calls []call
	err   error
}

func (m *MockProvider) Count(name string, val float64, tags []string) error {
	m.calls = append(m.calls, call{"count", name, val, tags})
	return m.err
}

func (m *MockProvider) Gauge(name string, val float64, tags []string) error {
	m.calls = append(m.calls, call{"gauge", name, val, tags})
	return m.err
}

func (m *MockProvider) Histogram(name string, val float64, tags []string) error {
	m.calls = append(m.calls, call{"histogram", name, val, tags})
	return m.err
}

func (m *MockProvider) Close() error { return nil }

func TestRecorder(t *testing.T) {
	provider := &MockProvider{}
	rec := NewRecorder(provider, zerolog.Nop(), "env:test")

	rec.Created("Apparel", "in-stock")
	rec.WriteFailed("timeout", true)
	rec.WriteFailed("access_denied", false)
	rec.Rejected("variant.stockQuantity")
	rec.PutDuration(1500*time.Microsecond, "ok")

	assert.Equal(t, []call{
		{"count", ProductCreated, 1, []string{"env:test", "category:Apparel", "status:in-stock"}},
		{"count", ProductWriteFailed, 1, []string{"env:test", "reason:timeout", "outcome:unknown"}},
		{"count", ProductWriteFailed, 1, []string{"env:test", "reason:access_denied", "outcome:rejected"}},
		{"count", ValidationRejected, 1, []string{"env:test", "field:variant.stockQuantity"}},
		{"histogram", PutLatency, 1.5, []string{"env:test", "outcome:ok"}},
	}, provider.calls)
}

func TestRecorder_ProviderErrorIsOnlyLogged(t *testing.T) {
	var buf bytes.Buffer
	provider := &MockProvider{err: errors.New("statsd down")}
	rec := NewRecorder(provider, zerolog.New(&buf).Level(zerolog.DebugLevel))

	assert.NotPanics(t, func() { rec.Created("Apparel", "in-stock") })
	assert.Contains(t, buf.String(), "statsd down")
	assert.Contains(t, buf.String(), ProductCreated)
}

func TestRecorder_Nil(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Created("x", "y")
		rec.WriteFailed("x", false)
		rec.Rejected("x")
		rec.PutDuration(time.Second, "ok")
	})
}
