package observability

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/products-cli/pkg/config"
	"github.com/raywall/products-cli/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// StatsdClient é o subconjunto do cliente statsd usado aqui (Permite Mocking).
type StatsdClient interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	Close() error
}

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client StatsdClient
}

func NewDatadogProvider(client StatsdClient) *DatadogProvider {
	return &DatadogProvider{client: client}
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer do statsd antes do processo terminar.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// SetupMetrics inicializa o provedor correto baseado na configuração.
func SetupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
		statsd.WithoutTelemetry(),
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return NewDatadogProvider(client), nil
}
