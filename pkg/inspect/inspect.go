// Package inspect implementa o comando sem argumentos: teste de conexão que
// descreve a tabela de produtos e confere as tabelas colaboradoras.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raywall/products-cli/dyndb"
	"github.com/raywall/products-cli/pkg/console"
	"github.com/raywall/products-cli/pkg/schema"
	"github.com/rs/zerolog"
)

// Counter conta os itens de fato (Scan). Opcional.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Options struct {
	Table         string
	Collaborators []string

	// HashKey configurado para a tabela de produtos; vazio usa o do guia.
	HashKey string

	// LiveCount faz um Scan paginado além do ItemCount aproximado.
	LiveCount bool
}

// TableCheck é o resultado de uma tabela colaboradora.
type TableCheck struct {
	Name     string
	Found    bool
	Info     *dyndb.TableInfo
	Warnings []string
}

type Report struct {
	Table         *dyndb.TableInfo
	TableFound    bool
	LiveCount     *int64
	Collaborators []TableCheck
	Warnings      []string
}

type Inspector struct {
	client  dyndb.TableDescriber
	counter Counter
	guide   *schema.Guide
	printer *console.Printer
	log     zerolog.Logger
}

func New(client dyndb.TableDescriber, counter Counter, guide *schema.Guide, printer *console.Printer, log zerolog.Logger) *Inspector {
	return &Inspector{
		client:  client,
		counter: counter,
		guide:   guide,
		printer: printer,
		log:     log.With().Str("component", "inspect").Logger(),
	}
}

// Run descreve as tabelas e imprime o relatório. Tabela inexistente vira
// aviso; erro de credencial (ou qualquer outro erro do DynamoDB) é devolvido.
func (i *Inspector) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}

	info, err := dyndb.DescribeTable(ctx, i.client, opts.Table)
	switch {
	case errors.Is(err, dyndb.ErrTableNotFound):
		msg := fmt.Sprintf("table '%s' not found", opts.Table)
		report.Warnings = append(report.Warnings, msg)
		i.printer.Warn("%s", msg)
		i.printer.Hint("create it with hash key '%s' (run with --schema for the full contract)", i.productsContract(opts).Key[0].Attribute)
	case err != nil:
		return nil, err
	default:
		report.Table = info
		report.TableFound = true
		i.printTable(info)
		report.Warnings = append(report.Warnings, i.checkKeys(i.productsContract(opts), info)...)

		if opts.LiveCount && i.counter != nil {
			n, err := i.counter.Count(ctx)
			if err != nil {
				return nil, err
			}
			report.LiveCount = &n
			i.printer.Field("Live item count", n)
		}
	}

	if len(opts.Collaborators) > 0 {
		i.printer.Header("Collaborator tables")
	}
	for _, name := range opts.Collaborators {
		check, err := i.checkCollaborator(ctx, name)
		if err != nil {
			return nil, err
		}
		report.Collaborators = append(report.Collaborators, check)
		report.Warnings = append(report.Warnings, check.Warnings...)
	}

	i.log.Debug().Int("warnings", len(report.Warnings)).Bool("tableFound", report.TableFound).Msg("inspeção concluída")
	return report, nil
}

func (i *Inspector) checkCollaborator(ctx context.Context, name string) (TableCheck, error) {
	check := TableCheck{Name: name}

	info, err := dyndb.DescribeTable(ctx, i.client, name)
	if errors.Is(err, dyndb.ErrTableNotFound) {
		msg := fmt.Sprintf("table '%s' not found; features that depend on it are unavailable", name)
		check.Warnings = append(check.Warnings, msg)
		i.printer.Warn("%s", msg)
		return check, nil
	}
	if err != nil {
		return check, err
	}

	check.Found = true
	check.Info = info
	i.printer.Success("%s: %s, %d items", name, info.Status, info.ItemCount)
	if i.guide != nil {
		if contract, ok := i.guide.Lookup(name); ok {
			check.Warnings = append(check.Warnings, i.checkKeys(contract, info)...)
		}
	}
	return check, nil
}

// productsContract é o contrato da tabela de produtos com o nome e a chave
// configurados.
func (i *Inspector) productsContract(opts Options) schema.Table {
	contract := schema.Table{Key: []schema.KeyAttr{{Attribute: "productID", KeyType: "HASH", Type: "S"}}}
	if i.guide != nil {
		if t, ok := i.guide.Lookup("products"); ok {
			contract = t
		}
	}
	contract = contract.WithName(opts.Table)
	if opts.HashKey != "" && opts.HashKey != contract.Key[0].Attribute {
		contract.Key = []schema.KeyAttr{{Attribute: opts.HashKey, KeyType: "HASH", Type: "S"}}
	}
	return contract
}

// checkKeys compara a chave real com o contrato e imprime cada divergência.
func (i *Inspector) checkKeys(contract schema.Table, info *dyndb.TableInfo) []string {
	var warnings []string
	for _, d := range contract.KeyDiff(info.KeySchema) {
		msg := fmt.Sprintf("%s: %s", contract.Name, d)
		warnings = append(warnings, msg)
		i.printer.Warn("%s", msg)
	}
	return warnings
}

func (i *Inspector) printTable(info *dyndb.TableInfo) {
	p := i.printer
	p.Header("Table " + info.Name)
	if info.Active() {
		p.Success("connected, table is %s", info.Status)
	} else {
		p.Warn("table status is %s", info.Status)
	}
	p.Field("ARN", info.ARN)
	if !info.CreatedAt.IsZero() {
		p.Field("Created", info.CreatedAt.UTC().Format(time.RFC3339))
	}
	p.Field("Item count", fmt.Sprintf("%d (approximate)", info.ItemCount))
	p.Field("Size", fmt.Sprintf("%d bytes", info.SizeBytes))
	p.Field("Key schema", formatKeys(info.KeySchema))
	p.Field("Attributes", formatAttributes(info.Attributes))
	p.Field("Billing mode", info.BillingMode)
	if info.BillingMode == "PROVISIONED" {
		p.Field("Read capacity", info.ReadCapacity)
		p.Field("Write capacity", info.WriteCapacity)
	}
}

func formatKeys(keys []dyndb.KeyElement) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%s)", k.Attribute, k.KeyType))
	}
	return strings.Join(parts, ", ")
}

func formatAttributes(attrs []dyndb.AttributeDefinition) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Name, a.Type))
	}
	return strings.Join(parts, ", ")
}
