package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// HashKey é o atributo chave da tabela de produtos.
	HashKey = "productID"
	// ProductIDPrefix identifica os registros criados por esta ferramenta.
	ProductIDPrefix = "PRD-"
)

// NewProductID gera um identificador único sem consultar a tabela.
//
// O sufixo é um UUIDv7: os primeiros 48 bits são o timestamp em milissegundos,
// então a ordem lexicográfica acompanha a ordem de criação. Dentro do mesmo
// processo a biblioteca garante valores monotônicos.
func NewProductID() string {
	return ProductIDPrefix + strings.ToUpper(uuid.Must(uuid.NewV7()).String())
}

// VariantID monta o ID da n-ésima variante (base 1) do produto.
func VariantID(productID string, n int) string {
	if productID == "" {
		return fmt.Sprintf("v%02d", n)
	}
	return fmt.Sprintf("%s-v%02d", productID, n)
}
