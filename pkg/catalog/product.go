package catalog

import (
	"fmt"
	"strings"
	"time"
)

// StockMode indica se a disponibilidade do produto deriva do estoque das variantes.
type StockMode string

const (
	StockTracked   StockMode = "tracked"
	StockUntracked StockMode = "untracked"
)

// aliases aceitos na entrada, herdados da ferramenta anterior (parent/variant).
var stockModeAliases = map[string]StockMode{
	"tracked":   StockTracked,
	"variant":   StockTracked,
	"untracked": StockUntracked,
	"parent":    StockUntracked,
}

// ParseStockMode normaliza a entrada do operador para um StockMode reconhecido.
func ParseStockMode(raw string) (StockMode, error) {
	mode, ok := stockModeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("stock mode must be %q or %q", StockTracked, StockUntracked)
	}
	return mode, nil
}

// Tracked informa se o status do produto é calculado a partir das variantes.
func (m StockMode) Tracked() bool {
	return m == StockTracked
}

// Product é o registro persistido na tabela Products. As variantes vão
// embutidas no mesmo item, nunca em itens separados.
type Product struct {
	ID          string    `dynamodbav:"productID" json:"productID"`
	Name        string    `dynamodbav:"name" json:"name"`
	Category    string    `dynamodbav:"category" json:"category"`
	SubCategory string    `dynamodbav:"subCategory" json:"subCategory"`
	IsVariant   bool      `dynamodbav:"isVariant" json:"isVariant"`
	StockMode   StockMode `dynamodbav:"stockMode" json:"stockMode"`
	Status      Status    `dynamodbav:"status" json:"status"`
	Variants    []Variant `dynamodbav:"variants" json:"variants"`
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated string    `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// Variant é uma configuração vendável do produto (tamanho, cor...).
type Variant struct {
	ID            string            `dynamodbav:"id" json:"id"`
	Name          string            `dynamodbav:"name" json:"name"`
	IsVariant     bool              `dynamodbav:"isVariant" json:"isVariant"`
	Attributes    map[string]string `dynamodbav:"attributes,omitempty" json:"attributes,omitempty"`
	StockQuantity int               `dynamodbav:"stockQuantity" json:"stockQuantity"`
	Price         Money             `dynamodbav:"price" json:"price"`
}

// NewProduct cria o rascunho em memória usado durante a coleta.
func NewProduct() Product {
	return Product{Variants: []Variant{}}
}

// AddVariant anexa a variante preservando a ordem de entrada. O ID definitivo
// só existe depois de AssignID.
func (p *Product) AddVariant(v Variant) {
	v.IsVariant = true
	if v.Name == "" {
		v.Name = p.Name
	}
	v.ID = VariantID("", len(p.Variants)+1)
	p.Variants = append(p.Variants, v)
}

// AssignID define o ID do produto e renumera as variantes a partir dele.
func (p *Product) AssignID(id string) {
	p.ID = id
	for i := range p.Variants {
		p.Variants[i].ID = VariantID(id, i+1)
	}
}

// Stamp registra o momento de criação.
func (p *Product) Stamp(now time.Time) {
	now = now.UTC()
	p.CreatedAt = now
	p.LastUpdated = now.Format(time.DateOnly)
}

// Refresh recalcula o status derivado; o operador nunca o informa.
func (p *Product) Refresh() {
	p.Status = ComputeStatus(p.StockMode, p.Variants)
}
