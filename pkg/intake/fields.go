package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/products-cli/pkg/catalog"
)

// Field identifica a pergunta pendente.
type Field string

const (
	FieldName        Field = "name"
	FieldCategory    Field = "category"
	FieldSubCategory Field = "subCategory"
	FieldStockMode   Field = "stockMode"
	FieldAddVariant  Field = "addVariant"

	FieldVariantName       Field = "variant.name"
	FieldVariantAttributes Field = "variant.attributes"
	FieldVariantStock      Field = "variant.stockQuantity"
	FieldVariantPrice      Field = "variant.price"
)

var (
	productFields = []Field{FieldName, FieldCategory, FieldSubCategory, FieldStockMode}
	variantFields = []Field{FieldVariantName, FieldVariantAttributes, FieldVariantStock, FieldVariantPrice}
)

var labels = map[Field]string{
	FieldName:              "Product name",
	FieldCategory:          "Category",
	FieldSubCategory:       "Sub-category",
	FieldStockMode:         "Stock mode (tracked/untracked)",
	FieldAddVariant:        "Add a variant? (y/N)",
	FieldVariantName:       "Variant name (blank = product name)",
	FieldVariantAttributes: "Attributes (key=value, comma separated; blank for none)",
	FieldVariantStock:      "Stock quantity",
	FieldVariantPrice:      "Price",
}

// Label é o texto exibido ao operador.
func (f Field) Label() string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}

var validate = validator.New()

func invalid(f Field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: f, Reason: fmt.Sprintf(format, args...)}
}

// requiredText valida os campos de texto obrigatórios.
func requiredText(f Field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if err := validate.Var(v, "required,max=256"); err != nil {
		if v == "" {
			return "", invalid(f, "must not be empty")
		}
		return "", invalid(f, "must be at most 256 characters")
	}
	return v, nil
}

func parseStockMode(raw string) (catalog.StockMode, error) {
	mode, err := catalog.ParseStockMode(raw)
	if err != nil {
		return "", invalid(FieldStockMode, "%s", err.Error())
	}
	return mode, nil
}

// parseYesNo: resposta vazia vale "não".
func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "", "n", "no":
		return false, nil
	}
	return false, invalid(FieldAddVariant, "answer y or n")
}

func parseQuantity(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	qty, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid(FieldVariantStock, "must be a whole number, got %q", v)
	}
	if err := validate.Var(qty, "gte=0"); err != nil {
		return 0, invalid(FieldVariantStock, "must not be negative")
	}
	return qty, nil
}

func parsePrice(raw string) (catalog.Money, error) {
	price, err := catalog.ParseMoney(raw)
	if err != nil {
		return catalog.Money{}, invalid(FieldVariantPrice, "%s", err.Error())
	}
	return price, nil
}

// parseAttributes lê "size=M, color=blue". Vazio significa sem atributos.
func parseAttributes(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	attrs := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, invalid(FieldVariantAttributes, "malformed pair %q, use key=value", pair)
		}
		if _, dup := attrs[k]; dup {
			return nil, invalid(FieldVariantAttributes, "duplicate key %q", k)
		}
		attrs[k] = v
	}
	return attrs, nil
}

func trimmed(raw string) string {
	return strings.TrimSpace(raw)
}
