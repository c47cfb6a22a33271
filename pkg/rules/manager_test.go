package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileProgram(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	_, err = rm.CompileProgram("value in ['S', 'M', 'L']")
	assert.NoError(t, err)

	_, err = rm.CompileProgram("size(value) +")
	assert.ErrorContains(t, err, "erro de compilação CEL")

	_, err = rm.CompileProgram("value + '!'")
	assert.ErrorContains(t, err, "deve retornar bool")

	_, err = rm.CompileProgram("input.age > 18")
	assert.Error(t, err, "variável desconhecida")
}

func TestAttributeRules_Check(t *testing.T) {
	ar, err := NewAttributeRules(map[string]string{
		"size":  "value in ['S', 'M', 'L', 'XL']",
		"color": "value.matches('^[a-z]+$')",
		"fit":   "!('kids' in attrs) || value == 'regular'",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "fit", "size"}, ar.Keys())

	tests := []struct {
		name    string
		attrs   map[string]string
		wantKey string
	}{
		{name: "válido", attrs: map[string]string{"size": "M", "color": "blue"}},
		{name: "chave sem regra", attrs: map[string]string{"material": "cotton"}},
		{name: "tamanho fora da lista", attrs: map[string]string{"size": "XXL"}, wantKey: "size"},
		{name: "cor com maiúscula", attrs: map[string]string{"color": "Blue"}, wantKey: "color"},
		{name: "regra usando attrs", attrs: map[string]string{"kids": "yes", "fit": "slim"}, wantKey: "fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ar.Check(tt.attrs)
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var v *Violation
			require.True(t, errors.As(err, &v))
			assert.Equal(t, tt.wantKey, v.Key)
		})
	}
}

func TestAttributeRules_EvalErrorIsViolation(t *testing.T) {
	ar, err := NewAttributeRules(map[string]string{"size": "int(value) > 0"})
	require.NoError(t, err)

	err = ar.Check(map[string]string{"size": "M"})

	var v *Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, "size", v.Key)
	assert.Error(t, v.Err)
	assert.ErrorContains(t, err, "int(value) > 0")

	assert.NoError(t, ar.Check(map[string]string{"size": "3"}))
}

func TestAttributeRules_Empty(t *testing.T) {
	ar, err := NewAttributeRules(nil)
	require.NoError(t, err)
	assert.NoError(t, ar.Check(map[string]string{"size": "anything"}))

	var none *AttributeRules
	assert.NoError(t, none.Check(map[string]string{"size": "x"}))
}

func TestNewAttributeRules_InvalidExpr(t *testing.T) {
	_, err := NewAttributeRules(map[string]string{"size": "value ==="})
	assert.ErrorContains(t, err, "regra do atributo 'size'")
}
