package intake

import (
	"errors"
	"fmt"
)

// ErrAborted: o diálogo foi interrompido (EOF na entrada ou cancelamento)
// antes do Finalize. Nada foi gravado.
var ErrAborted = errors.New("intake aborted")

// ValidationError é local ao pipeline: a resposta é recusada e a mesma
// pergunta é repetida.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// WriteFailure: o PutItem do Finalize falhou. OutcomeUnknown indica que a
// falha não trouxe veredito do servidor (timeout, conexão perdida) e o item
// pode ter sido gravado mesmo assim.
type WriteFailure struct {
	ProductID      string
	OutcomeUnknown bool
	Err            error
}

func (e *WriteFailure) Error() string {
	if e.OutcomeUnknown {
		return fmt.Sprintf("write of product %s has unknown outcome: %v", e.ProductID, e.Err)
	}
	return fmt.Sprintf("write of product %s failed: %v", e.ProductID, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}
