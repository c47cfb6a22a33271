package metrics

import (
	"time"

	"github.com/rs/zerolog"
)

// Recorder traduz eventos do domínio em métricas. Falha ao enviar métrica
// nunca interrompe o comando: só vira log de debug.
type Recorder struct {
	provider Provider
	log      zerolog.Logger
	tags     []string
}

func NewRecorder(provider Provider, log zerolog.Logger, tags ...string) *Recorder {
	return &Recorder{
		provider: provider,
		log:      log.With().Str("component", "metrics").Logger(),
		tags:     tags,
	}
}

func (r *Recorder) with(extra ...string) []string {
	out := make([]string, 0, len(r.tags)+len(extra))
	out = append(out, r.tags...)
	return append(out, extra...)
}

func (r *Recorder) report(name string, err error) {
	if err != nil {
		r.log.Debug().Err(err).Str("metric", name).Msg("falha ao enviar métrica")
	}
}

// Created conta um produto gravado.
func (r *Recorder) Created(category, status string) {
	if r == nil {
		return
	}
	r.report(ProductCreated, r.provider.Count(ProductCreated, 1, r.with("category:"+category, "status:"+status)))
}

// WriteFailed conta uma gravação abortada; unknown indica resultado incerto.
func (r *Recorder) WriteFailed(reason string, unknown bool) {
	if r == nil {
		return
	}
	outcome := "rejected"
	if unknown {
		outcome = "unknown"
	}
	r.report(ProductWriteFailed, r.provider.Count(ProductWriteFailed, 1, r.with("reason:"+reason, "outcome:"+outcome)))
}

// Rejected conta uma resposta do operador recusada pela validação.
func (r *Recorder) Rejected(field string) {
	if r == nil {
		return
	}
	r.report(ValidationRejected, r.provider.Count(ValidationRejected, 1, r.with("field:"+field)))
}

// PutDuration registra a latência de uma tentativa de PutItem.
func (r *Recorder) PutDuration(d time.Duration, outcome string) {
	if r == nil {
		return
	}
	ms := float64(d) / float64(time.Millisecond)
	r.report(PutLatency, r.provider.Histogram(PutLatency, ms, r.with("outcome:"+outcome)))
}
