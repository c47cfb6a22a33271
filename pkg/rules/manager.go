package rules

import (
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL sobre
// atributos de variants.
type RuleManager struct {
	env *cel.Env
}

// NewRuleManager inicializa o ambiente CEL com as variáveis expostas às regras:
//
//	key   - nome do atributo (ex: "size")
//	value - valor digitado pelo operador
//	attrs - todos os atributos do variant
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable("key", cel.StringType),
		cel.Variable("value", cel.StringType),
		cel.Variable("attrs", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}
	return &RuleManager{env: env}, nil
}

// CompileProgram compila uma expressão que precisa resultar em bool.
func (rm *RuleManager) CompileProgram(expr string) (cel.Program, error) {
	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro de compilação CEL '%s': %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expressão CEL '%s' deve retornar bool, retorna %s", expr, ast.OutputType())
	}
	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar programa CEL: %w", err)
	}
	return prg, nil
}

// Violation: o valor não passou na regra configurada para a chave. Err
// guarda a falha de avaliação quando a regra nem chegou a um resultado
// (ex: int(value) com um valor não numérico).
type Violation struct {
	Key  string
	Expr string
	Err  error
}

func (v *Violation) Error() string {
	if v.Err != nil {
		return fmt.Sprintf("valor de '%s' não atende a regra: %s (%v)", v.Key, v.Expr, v.Err)
	}
	return fmt.Sprintf("valor de '%s' não atende a regra: %s", v.Key, v.Expr)
}

func (v *Violation) Unwrap() error { return v.Err }

type compiled struct {
	expr string
	prg  cel.Program
}

// AttributeRules guarda as regras por chave de atributo, compiladas uma vez.
type AttributeRules struct {
	programs map[string]compiled
}

// NewAttributeRules compila todas as regras; uma expressão inválida falha
// aqui, antes de qualquer pergunta ao operador.
func NewAttributeRules(exprs map[string]string) (*AttributeRules, error) {
	ar := &AttributeRules{programs: make(map[string]compiled, len(exprs))}
	if len(exprs) == 0 {
		return ar, nil
	}

	rm, err := NewRuleManager()
	if err != nil {
		return nil, err
	}
	for key, expr := range exprs {
		prg, err := rm.CompileProgram(expr)
		if err != nil {
			return nil, fmt.Errorf("regra do atributo '%s': %w", key, err)
		}
		ar.programs[key] = compiled{expr: expr, prg: prg}
	}
	return ar, nil
}

// Keys lista as chaves que possuem regra, em ordem alfabética.
func (ar *AttributeRules) Keys() []string {
	keys := make([]string, 0, len(ar.programs))
	for k := range ar.programs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check avalia cada atributo que tem regra. Chaves sem regra passam.
func (ar *AttributeRules) Check(attrs map[string]string) error {
	if ar == nil {
		return nil
	}
	for _, key := range ar.Keys() {
		value, ok := attrs[key]
		if !ok {
			continue
		}
		c := ar.programs[key]

		out, _, err := c.prg.Eval(map[string]any{
			"key":   key,
			"value": value,
			"attrs": attrs,
		})
		if err != nil {
			// o valor veio do operador: falha de avaliação também é recusa
			return &Violation{Key: key, Expr: c.expr, Err: err}
		}
		if pass, _ := out.Value().(bool); !pass {
			return &Violation{Key: key, Expr: c.expr}
		}
	}
	return nil
}
