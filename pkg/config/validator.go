package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *CLIConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *CLIConfig) error {
	seen := map[string]bool{cfg.Table.Name: true}
	for _, name := range cfg.Table.Collaborators {
		if name == cfg.Table.Name {
			return fmt.Errorf("tabela colaboradora '%s' é a própria tabela de produtos", name)
		}
		if seen[name] {
			return fmt.Errorf("tabela colaboradora duplicada: '%s'", name)
		}
		seen[name] = true
	}
	return nil
}
