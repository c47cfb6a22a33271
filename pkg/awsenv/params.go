package awsenv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ParameterStore resolve ${ssm./path} e ${secret.id} para o injector.
type ParameterStore struct {
	SSM     SSMClient
	Secrets SecretsClient
}

func NewParameterStore(cfg aws.Config) *ParameterStore {
	return &ParameterStore{
		SSM:     ssm.NewFromConfig(cfg),
		Secrets: secretsmanager.NewFromConfig(cfg),
	}
}

// Parameter lê um parâmetro do SSM, sempre com decrypt.
func (p *ParameterStore) Parameter(ctx context.Context, name string) (string, error) {
	out, err := p.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM %s sem valor", name)
	}
	return *out.Parameter.Value, nil
}

// Secret lê um segredo do Secrets Manager. "id#campo" seleciona um campo de
// um segredo JSON.
func (p *ParameterStore) Secret(ctx context.Context, ref string) (string, error) {
	id, field, hasField := strings.Cut(ref, "#")

	out, err := p.Secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s não é texto", id)
	}

	val := *out.SecretString
	if !hasField {
		return val, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("segredo %s não é JSON: %w", id, err)
	}
	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("campo '%s' não existe no segredo %s", field, id)
	}
	return fmt.Sprintf("%v", v), nil
}
