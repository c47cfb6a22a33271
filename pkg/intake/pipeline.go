// Package intake conduz o diálogo sequencial que monta um Product com seus
// variants e o grava com um único PutItem.
package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raywall/products-cli/dyndb"
	"github.com/raywall/products-cli/pkg/catalog"
	"github.com/raywall/products-cli/pkg/metrics"
	"github.com/raywall/products-cli/pkg/rules"
	"github.com/rs/zerolog"
)

// State do pipeline. CollectProduct é o inicial; Done e Aborted são terminais.
type State int

const (
	CollectProduct State = iota
	CollectVariants
	Finalize
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case CollectProduct:
		return "CollectProduct"
	case CollectVariants:
		return "CollectVariants"
	case Finalize:
		return "Finalize"
	case Done:
		return "Done"
	case Aborted:
		return "Aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Writer é o que o pipeline precisa do store: uma escrita condicional.
type Writer interface {
	PutIfAbsent(ctx context.Context, item catalog.Product) error
}

type Options struct {
	Rules          *rules.AttributeRules
	MaxPutAttempts int
	NewID          func() string
	Now            func() time.Time
	Metrics        *metrics.Recorder
	Logger         zerolog.Logger
}

type Pipeline struct {
	store Writer
	opts  Options
	log   zerolog.Logger

	state   State
	step    int
	product catalog.Product
	variant catalog.Variant
}

func New(store Writer, opts Options) *Pipeline {
	if opts.MaxPutAttempts < 1 {
		opts.MaxPutAttempts = 1
	}
	if opts.NewID == nil {
		opts.NewID = catalog.NewProductID
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		store:   store,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "intake").Logger(),
		state:   CollectProduct,
		product: catalog.NewProduct(),
	}
}

func (p *Pipeline) State() State { return p.state }

// Pending devolve o campo aguardando resposta, ou "" fora das fases de coleta.
func (p *Pipeline) Pending() Field {
	switch p.state {
	case CollectProduct:
		return productFields[p.step]
	case CollectVariants:
		if p.step == 0 {
			return FieldAddVariant
		}
		return variantFields[p.step-1]
	}
	return ""
}

// Prompt é o texto da pergunta pendente.
func (p *Pipeline) Prompt() string {
	f := p.Pending()
	if f == FieldVariantName && p.product.Name != "" {
		return fmt.Sprintf("Variant name (blank = %s)", p.product.Name)
	}
	return f.Label()
}

// Draft devolve uma cópia do produto em montagem.
func (p *Pipeline) Draft() catalog.Product {
	d := p.product
	d.Variants = append([]catalog.Variant(nil), p.product.Variants...)
	return d
}

// Submit aplica a resposta ao campo pendente. Um *ValidationError deixa o
// estado exatamente como estava.
func (p *Pipeline) Submit(answer string) error {
	field := p.Pending()
	if field == "" {
		return fmt.Errorf("intake: no pending question in state %s", p.state)
	}

	if err := p.apply(field, answer); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			p.opts.Metrics.Rejected(string(field))
			p.log.Debug().Str("field", string(field)).Str("reason", ve.Reason).Msg("resposta recusada")
		}
		return err
	}
	p.advance(field)
	return nil
}

func (p *Pipeline) apply(field Field, answer string) error {
	switch field {
	case FieldName:
		v, err := requiredText(field, answer)
		if err != nil {
			return err
		}
		p.product.Name = v
	case FieldCategory:
		v, err := requiredText(field, answer)
		if err != nil {
			return err
		}
		p.product.Category = v
	case FieldSubCategory:
		v, err := requiredText(field, answer)
		if err != nil {
			return err
		}
		p.product.SubCategory = v
	case FieldStockMode:
		mode, err := parseStockMode(answer)
		if err != nil {
			return err
		}
		p.product.StockMode = mode
	case FieldAddVariant:
		yes, err := parseYesNo(answer)
		if err != nil {
			return err
		}
		if !yes {
			p.state = Finalize
			p.step = 0
			return nil
		}
		p.variant = catalog.Variant{}
	case FieldVariantName:
		// opcional: vazio herda o nome do produto em AddVariant
		p.variant.Name = trimmed(answer)
	case FieldVariantAttributes:
		attrs, err := parseAttributes(answer)
		if err != nil {
			return err
		}
		if err := p.opts.Rules.Check(attrs); err != nil {
			var v *rules.Violation
			if errors.As(err, &v) {
				return invalid(field, "%s", v.Error())
			}
			return err
		}
		p.variant.Attributes = attrs
	case FieldVariantStock:
		qty, err := parseQuantity(answer)
		if err != nil {
			return err
		}
		p.variant.StockQuantity = qty
	case FieldVariantPrice:
		price, err := parsePrice(answer)
		if err != nil {
			return err
		}
		p.variant.Price = price
	}
	return nil
}

// advance move para a próxima pergunta depois de uma resposta aceita.
func (p *Pipeline) advance(field Field) {
	switch p.state {
	case CollectProduct:
		p.step++
		if p.step == len(productFields) {
			p.state = CollectVariants
			p.step = 0
		}
	case CollectVariants:
		p.step++
		if field == FieldVariantPrice {
			p.product.AddVariant(p.variant)
			p.log.Debug().Int("variants", len(p.product.Variants)).Msg("variant adicionado")
			p.step = 0
		}
	}
}

// Abort encerra o diálogo sem gravar nada.
func (p *Pipeline) Abort() {
	if p.state != Done {
		p.state = Aborted
	}
}

// Finalize atribui o ID, calcula o status, carimba a criação e faz o único
// PutItem. Conflito de ID gera um novo ID e repete, até MaxPutAttempts.
func (p *Pipeline) Finalize(ctx context.Context) (*catalog.Product, error) {
	if p.state != Finalize {
		return nil, fmt.Errorf("intake: cannot finalize in state %s", p.state)
	}

	p.product.Stamp(p.opts.Now())
	p.product.Refresh()

	for attempt := 1; ; attempt++ {
		p.product.AssignID(p.opts.NewID())

		start := time.Now()
		err := p.store.PutIfAbsent(ctx, p.product)
		elapsed := time.Since(start)

		if err == nil {
			p.state = Done
			p.opts.Metrics.PutDuration(elapsed, "ok")
			p.opts.Metrics.Created(p.product.Category, string(p.product.Status))
			p.log.Info().Str("productID", p.product.ID).Int("attempt", attempt).Msg("produto gravado")
			out := p.Draft()
			return &out, nil
		}

		p.opts.Metrics.PutDuration(elapsed, "error")
		if errors.Is(err, dyndb.ErrConditionFailed) && attempt < p.opts.MaxPutAttempts {
			p.log.Warn().Str("productID", p.product.ID).Msg("ID já existe, gerando outro")
			continue
		}

		p.state = Aborted
		failure := &WriteFailure{
			ProductID:      p.product.ID,
			OutcomeUnknown: dyndb.OutcomeUnknown(err),
			Err:            err,
		}
		p.opts.Metrics.WriteFailed(failureReason(err), failure.OutcomeUnknown)
		p.log.Error().Err(err).Str("productID", p.product.ID).Bool("outcomeUnknown", failure.OutcomeUnknown).Msg("falha ao gravar produto")
		return nil, failure
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, dyndb.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, dyndb.ErrTableNotFound):
		return "table_not_found"
	case errors.Is(err, dyndb.ErrConditionFailed):
		return "id_conflict"
	case dyndb.OutcomeUnknown(err):
		return "transport"
	}
	return "rejected"
}
