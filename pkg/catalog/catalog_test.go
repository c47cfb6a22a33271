package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatus(t *testing.T) {
	withStock := func(qty ...int) []Variant {
		vs := make([]Variant, 0, len(qty))
		for _, q := range qty {
			vs = append(vs, Variant{StockQuantity: q})
		}
		return vs
	}

	tests := []struct {
		name     string
		mode     StockMode
		variants []Variant
		want     Status
	}{
		{"tracked sem variantes", StockTracked, nil, StatusOutOfStock},
		{"tracked lista vazia", StockTracked, []Variant{}, StatusOutOfStock},
		{"tracked tudo zerado", StockTracked, withStock(0, 0, 0), StatusOutOfStock},
		{"tracked uma positiva", StockTracked, withStock(0, 3, 0), StatusInStock},
		{"tracked todas positivas", StockTracked, withStock(1, 2), StatusInStock},
		{"untracked sem variantes", StockUntracked, nil, StatusNotTracked},
		{"untracked com estoque", StockUntracked, withStock(10), StatusNotTracked},
		{"untracked zerado", StockUntracked, withStock(0), StatusNotTracked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.mode, tt.variants))
		})
	}
}

func TestParseStockMode(t *testing.T) {
	for raw, want := range map[string]StockMode{
		"tracked":     StockTracked,
		"  TRACKED  ": StockTracked,
		"variant":     StockTracked,
		"untracked":   StockUntracked,
		"Parent":      StockUntracked,
	} {
		got, err := ParseStockMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "  ", "always", "track"} {
		_, err := ParseStockMode(raw)
		assert.Error(t, err, raw)
	}
}

func TestNewProductID_Unique(t *testing.T) {
	const n = 5000
	seen := make(map[string]struct{}, n)
	prev := ""
	for i := 0; i < n; i++ {
		id := NewProductID()
		require.True(t, strings.HasPrefix(id, ProductIDPrefix))
		_, dup := seen[id]
		require.False(t, dup, "id duplicado: %s", id)
		seen[id] = struct{}{}

		// UUIDv7 monotônico: a ordem textual segue a ordem de geração
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.Len(t, seen, n)
}

func TestProduct_AssignID(t *testing.T) {
	p := NewProduct()
	p.Name = "Shirt"
	p.AddVariant(Variant{Attributes: map[string]string{"size": "M"}})
	p.AddVariant(Variant{Name: "Shirt L"})

	assert.Equal(t, "v01", p.Variants[0].ID)
	assert.Equal(t, "Shirt", p.Variants[0].Name)
	assert.True(t, p.Variants[0].IsVariant)

	p.AssignID("PRD-1")
	assert.Equal(t, "PRD-1", p.ID)
	assert.Equal(t, "PRD-1-v01", p.Variants[0].ID)
	assert.Equal(t, "PRD-1-v02", p.Variants[1].ID)

	// reatribuir (nova tentativa) renumera tudo
	p.AssignID("PRD-2")
	assert.Equal(t, "PRD-2-v02", p.Variants[1].ID)
}

func TestProduct_Stamp(t *testing.T) {
	p := NewProduct()
	ts := time.Date(2026, 3, 4, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	p.Stamp(ts)

	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.Equal(t, "2026-03-04", p.LastUpdated)
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney(" 19.99 ")
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())

	_, err = ParseMoney("0")
	assert.NoError(t, err)

	for _, raw := range []string{"-1", "-0.01", "abc", "", "1,5"} {
		_, err := ParseMoney(raw)
		assert.Error(t, err, raw)
	}
}

func TestProduct_AttributeValueShape(t *testing.T) {
	p := NewProduct()
	p.Name = "Shirt"
	p.Category = "Apparel"
	p.SubCategory = "Tops"
	p.StockMode = StockTracked
	p.AddVariant(Variant{
		Attributes:    map[string]string{"size": "M"},
		StockQuantity: 5,
		Price:         MustMoney("19.99"),
	})
	p.AssignID("PRD-X")
	p.Refresh()
	p.Stamp(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	av, err := attributevalue.MarshalMap(p)
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "PRD-X"}, av["productID"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "in-stock"}, av["status"])

	variants, ok := av["variants"].(*types.AttributeValueMemberL)
	require.True(t, ok, "variants deve ser uma lista embutida")
	require.Len(t, variants.Value, 1)

	variant, ok := variants.Value[0].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "19.99"}, variant.Value["price"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "5"}, variant.Value["stockQuantity"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "PRD-X-v01"}, variant.Value["id"])

	var back Product
	require.NoError(t, attributevalue.UnmarshalMap(av, &back))
	assert.Equal(t, p.ID, back.ID)
	assert.True(t, p.Variants[0].Price.Equal(back.Variants[0].Price.Decimal))
	assert.True(t, p.CreatedAt.Equal(back.CreatedAt))
}
