// Package schema mantém o contrato de referência das tabelas que a CLI usa
// (Products) e das tabelas colaboradoras (Pincode_management, Delivery_types),
// para quem provisiona o DynamoDB.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/raywall/products-cli/dyndb"
	"github.com/raywall/products-cli/pkg/console"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

type Guide struct {
	Tables []Table `yaml:"tables"`
}

type Table struct {
	Name        string      `yaml:"name"`
	Role        string      `yaml:"role"`
	Description string      `yaml:"description"`
	BillingMode string      `yaml:"billing_mode"`
	Key         []KeyAttr   `yaml:"key"`
	Attributes  []Attribute `yaml:"attributes"`
}

type KeyAttr struct {
	Attribute string `yaml:"attribute"`
	KeyType   string `yaml:"key_type"`
	Type      string `yaml:"type"`
}

type Attribute struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Load lê o guia embutido no binário.
func Load() (*Guide, error) {
	return Parse(tablesYAML)
}

func Parse(data []byte) (*Guide, error) {
	var g Guide
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("guia de tabelas inválido: %w", err)
	}
	for _, t := range g.Tables {
		if t.Name == "" || len(t.Key) == 0 {
			return nil, fmt.Errorf("guia de tabelas inválido: tabela '%s' sem nome ou chave", t.Name)
		}
	}
	return &g, nil
}

// Lookup procura pelo nome da tabela ou pelo papel (products, pincodes...).
func (g *Guide) Lookup(nameOrRole string) (Table, bool) {
	for _, t := range g.Tables {
		if t.Name == nameOrRole || t.Role == nameOrRole {
			return t, true
		}
	}
	return Table{}, false
}

// KeySchema devolve a chave no mesmo formato de dyndb.TableInfo.
func (t Table) KeySchema() []dyndb.KeyElement {
	out := make([]dyndb.KeyElement, 0, len(t.Key))
	for _, k := range t.Key {
		out = append(out, dyndb.KeyElement{Attribute: k.Attribute, KeyType: k.KeyType})
	}
	return out
}

// WithName devolve uma cópia do contrato apontando para outro nome físico
// (ex: Products-dev), mantendo chave e atributos.
func (t Table) WithName(name string) Table {
	t.Name = name
	return t
}

// KeyDiff compara a chave real com o contrato e descreve cada divergência.
func (t Table) KeyDiff(actual []dyndb.KeyElement) []string {
	var diffs []string
	want := t.KeySchema()

	byType := func(keys []dyndb.KeyElement) map[string]string {
		m := make(map[string]string, len(keys))
		for _, k := range keys {
			m[k.KeyType] = k.Attribute
		}
		return m
	}
	have := byType(actual)
	expected := byType(want)

	for _, kt := range []string{"HASH", "RANGE"} {
		w, h := expected[kt], have[kt]
		switch {
		case w == h:
		case w == "":
			diffs = append(diffs, fmt.Sprintf("chave %s inesperada '%s'", kt, h))
		case h == "":
			diffs = append(diffs, fmt.Sprintf("chave %s '%s' ausente", kt, w))
		default:
			diffs = append(diffs, fmt.Sprintf("chave %s é '%s', esperado '%s'", kt, h, w))
		}
	}
	return diffs
}

// Print imprime o contrato de cada tabela do guia.
func (g *Guide) Print(p *console.Printer) {
	for _, t := range g.Tables {
		p.Header(t.Name)
		if t.Description != "" {
			p.Info("%s", t.Description)
		}
		keys := make([]string, 0, len(t.Key))
		for _, k := range t.Key {
			keys = append(keys, fmt.Sprintf("%s (%s, %s)", k.Attribute, k.KeyType, k.Type))
		}
		p.Field("Key", strings.Join(keys, ", "))
		p.Field("Billing mode", t.BillingMode)
		for _, a := range t.Attributes {
			p.Field(a.Name, fmt.Sprintf("%-4s %s", a.Type, a.Description))
		}
	}
}
