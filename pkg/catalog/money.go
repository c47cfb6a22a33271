package catalog

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Money guarda preços sem perda de precisão e é gravado no DynamoDB como número (N).
type Money struct {
	decimal.Decimal
}

// ParseMoney aceita apenas decimais não negativos.
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, fmt.Errorf("%q is not a decimal number", raw)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%q must not be negative", raw)
	}
	return Money{d}, nil
}

// MustMoney é usado em testes e valores fixos.
func MustMoney(raw string) Money {
	m, err := ParseMoney(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// MarshalDynamoDBAttributeValue implementa attributevalue.Marshaler.
func (m Money) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: m.Decimal.String()}, nil
}

// UnmarshalDynamoDBAttributeValue implementa attributevalue.Unmarshaler.
// Itens antigos gravaram preços como string; ambos são aceitos.
func (m *Money) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw string
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
	case *types.AttributeValueMemberNULL:
		m.Decimal = decimal.Zero
		return nil
	default:
		return fmt.Errorf("catalog: unsupported attribute type %T for money", av)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("catalog: invalid money value %q: %w", raw, err)
	}
	m.Decimal = d
	return nil
}
