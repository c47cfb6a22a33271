package intake

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/raywall/products-cli/pkg/catalog"
	"github.com/raywall/products-cli/pkg/console"
)

// Asker faz uma pergunta e devolve a resposta do operador.
type Asker interface {
	Ask(ctx context.Context, label string) (string, error)
	Reject(err *ValidationError)
}

// MaxAnswerBytes limita o tamanho de uma resposta. Uma linha maior é
// descartada e a pergunta é repetida.
const MaxAnswerBytes = 64 * 1024

type line struct {
	text    string
	tooLong bool
	err     error
}

// Dialog lê respostas linha a linha. A leitura roda numa goroutine para que
// o cancelamento do contexto (Ctrl+C) interrompa uma espera em stdin.
type Dialog struct {
	in      io.Reader
	printer *console.Printer

	once  sync.Once
	lines chan line

	closeOnce sync.Once
	done      chan struct{}
}

func NewDialog(in io.Reader, printer *console.Printer) *Dialog {
	return &Dialog{in: in, printer: printer, done: make(chan struct{})}
}

// Close libera a goroutine de leitura. Ela termina assim que a leitura em
// andamento retornar; um Ask depois do Close devolve ErrAborted.
func (d *Dialog) Close() {
	d.closeOnce.Do(func() { close(d.done) })
}

func (d *Dialog) start() {
	d.lines = make(chan line)
	go func() {
		defer close(d.lines)
		r := bufio.NewReader(d.in)
		for {
			l := readLine(r)
			if !d.send(l) || l.err != nil {
				return
			}
		}
	}()
}

// send entrega a linha, a menos que o Dialog já tenha sido fechado.
func (d *Dialog) send(l line) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.lines <- l:
		return true
	case <-d.done:
		return false
	}
}

// readLine lê até o '\n' sem limite de buffer, guardando no máximo
// MaxAnswerBytes. A última linha sem '\n' também conta como resposta.
func readLine(r *bufio.Reader) line {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > MaxAnswerBytes {
				tooLong, buf = true, nil
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong):
			return line{text: string(bytes.TrimRight(buf, "\r\n")), tooLong: tooLong}
		case err != nil:
			return line{err: err}
		}
		return line{text: string(bytes.TrimRight(buf, "\r\n")), tooLong: tooLong}
	}
}

// Ask devolve a próxima linha. Uma resposta acima de MaxAnswerBytes volta
// como *ValidationError (sem Field; o pipeline completa).
func (d *Dialog) Ask(ctx context.Context, label string) (string, error) {
	d.once.Do(d.start)
	d.printer.Prompt(label)

	select {
	case <-ctx.Done():
		fmt.Fprintln(d.printer.Writer())
		return "", fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	case l, ok := <-d.lines:
		if !ok {
			return "", fmt.Errorf("%w: %w", ErrAborted, io.EOF)
		}
		if l.err != nil {
			fmt.Fprintln(d.printer.Writer())
			return "", fmt.Errorf("%w: %w", ErrAborted, l.err)
		}
		if l.tooLong {
			return "", &ValidationError{Reason: fmt.Sprintf("answer is longer than %d bytes", MaxAnswerBytes)}
		}
		return l.text, nil
	}
}

func (d *Dialog) Reject(err *ValidationError) {
	d.printer.Warn("%s", err.Reason)
}

// Run conduz o diálogo completo até o Finalize. Validações são repetidas
// até uma resposta válida; interrupção aborta sem gravar.
func (p *Pipeline) Run(ctx context.Context, asker Asker) (*catalog.Product, error) {
	for p.state == CollectProduct || p.state == CollectVariants {
		answer, err := asker.Ask(ctx, p.Prompt())
		var askInvalid *ValidationError
		if errors.As(err, &askInvalid) {
			askInvalid.Field = p.Pending()
			p.opts.Metrics.Rejected(string(askInvalid.Field))
			asker.Reject(askInvalid)
			continue
		}
		if err != nil {
			p.Abort()
			if errors.Is(err, ErrAborted) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		if err := p.Submit(answer); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				asker.Reject(ve)
				continue
			}
			p.Abort()
			return nil, err
		}
	}
	return p.Finalize(ctx)
}
