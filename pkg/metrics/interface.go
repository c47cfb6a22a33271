package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar o pipeline.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
	// Close descarrega o que estiver em buffer. A CLI vive pouco, então
	// precisa ser chamado antes de sair.
	Close() error
}

// Nomes das métricas emitidas pela CLI.
const (
	ProductCreated     = "products.created"
	ProductWriteFailed = "products.write_failed"
	PutLatency         = "products.put_latency_ms"
	ValidationRejected = "products.validation_rejected"
)
