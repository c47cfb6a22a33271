package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Header("Products")
	p.Field("Status", "ACTIVE")
	p.Success("produto %s criado", "PRD-1")
	p.Warn("tabela %s não encontrada", "Delivery_types")
	p.Error("acesso negado")
	p.Hint("verifique o profile")
	p.Info("%d itens", 3)
	p.Prompt("Product name")

	assert.Equal(t, "\n== Products ==\n"+
		"  Status:            ACTIVE\n"+
		"✓ produto PRD-1 criado\n"+
		"! tabela Delivery_types não encontrada\n"+
		"✗ acesso negado\n"+
		"    verifique o profile\n"+
		"- 3 itens\n"+
		"Product name: ", buf.String())
}

func TestPrinter_Writer(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	assert.Same(t, &buf, p.Writer())
}
