// Package console formata a saída voltada ao operador (diálogo, inspeção,
// diagnósticos). Logs estruturados ficam no zerolog, em stderr.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer escreve mensagens coloridas em um único destino.
type Printer struct {
	out io.Writer

	header  *color.Color
	label   *color.Color
	success *color.Color
	warn    *color.Color
	failure *color.Color
	prompt  *color.Color
}

// New cria um Printer. Cor é desligada quando noColor é true ou quando o
// terminal não suporta (detecção do fatih/color, inclui NO_COLOR).
func New(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Faint),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		prompt:  color.New(color.FgCyan),
	}
	if noColor || color.NoColor {
		for _, c := range []*color.Color{p.header, p.label, p.success, p.warn, p.failure, p.prompt} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) Header(title string) {
	p.header.Fprintf(p.out, "\n== %s ==\n", title)
}

// Field imprime "  label: valor" com o rótulo alinhado em 18 colunas.
func (p *Printer) Field(label string, value any) {
	p.label.Fprintf(p.out, "  %-18s", label+":")
	fmt.Fprintf(p.out, " %v\n", value)
}

func (p *Printer) Success(format string, args ...any) {
	p.success.Fprint(p.out, "✓ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprint(p.out, "! ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.failure.Fprint(p.out, "✗ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, "- "+format+"\n", args...)
}

// Hint imprime uma linha de sugestão indentada, abaixo de um erro.
func (p *Printer) Hint(format string, args ...any) {
	p.label.Fprintf(p.out, "    "+format+"\n", args...)
}

// Prompt escreve a pergunta sem quebra de linha.
func (p *Printer) Prompt(label string) {
	p.prompt.Fprintf(p.out, "%s: ", label)
}
