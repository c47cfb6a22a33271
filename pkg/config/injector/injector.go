package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.PRODUCTS_TABLE}, ${ssm./products/table}, ${secret.datadog#host}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// Resolver busca valores remotos (SSM Parameter Store e Secrets Manager).
type Resolver interface {
	Parameter(ctx context.Context, name string) (string, error)
	Secret(ctx context.Context, ref string) (string, error)
}

type Injector struct {
	resolver Resolver
}

// New cria um Injector. resolver pode ser nil quando a configuração só usa
// ${env.X}; referências ssm/secret falham nesse caso.
func New(resolver Resolver) *Injector {
	return &Injector{resolver: resolver}
}

// NeedsRemote diz se o texto referencia SSM ou Secrets Manager, para que o
// chamador só monte clientes AWS quando necessário.
func NeedsRemote(raw string) bool {
	for _, m := range pattern.FindAllStringSubmatch(raw, -1) {
		if m[1] != "env" {
			return true
		}
	}
	return false
}

func (i *Injector) Inject(ctx context.Context, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			if err := i.injectRecursive(ctx, v.Field(k)); err != nil {
				return err
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := i.interpolateString(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String && !v.IsNil() {
			return i.injectMap(ctx, v)
		}

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interpolateString realiza a substituição baseada em Regex
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if err != nil {
			return match
		}
		parts := pattern.FindStringSubmatch(match)

		val, resolveErr := i.fetchValue(ctx, parts[1], parts[2])
		if resolveErr != nil {
			err = resolveErr
			return match
		}
		return val
	})

	return result, err
}

// injectMap lida com mapas de strings (ou de valores dinâmicos vindos do YAML)
func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	iter := v.MapRange()
	updates := make(map[string]reflect.Value)

	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return err
			}
			updates[iter.Key().String()] = reflect.ValueOf(newVal).Convert(v.Type().Elem())
		case reflect.Map:
			if elem.Type().Key().Kind() == reflect.String && !elem.IsNil() {
				if err := i.injectMap(ctx, elem); err != nil {
					return err
				}
			}
		}
	}

	for k, val := range updates {
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), val)
	}
	return nil
}

// fetchValue centraliza a busca de dados
func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		// variável não encontrada resolve para vazio
		return os.Getenv(key), nil

	case "ssm":
		if i.resolver == nil {
			return "", fmt.Errorf("referência ${ssm.%s} sem resolver AWS configurado", key)
		}
		return i.resolver.Parameter(ctx, key)

	case "secret":
		if i.resolver == nil {
			return "", fmt.Errorf("referência ${secret.%s} sem resolver AWS configurado", key)
		}
		return i.resolver.Secret(ctx, key)
	}

	return "", fmt.Errorf("fonte desconhecida: %s", sourceType)
}
