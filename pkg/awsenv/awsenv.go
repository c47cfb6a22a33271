// Package awsenv resolve a configuração da AWS uma única vez, no início do
// processo, a partir de valores explícitos (região, profile, endpoint) e
// expõe os clientes finos usados pela CLI.
package awsenv

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Settings são os valores explícitos que substituem a seleção implícita de
// região/credencial. Profile vazio mantém a cadeia padrão do SDK
// (variáveis de ambiente > arquivo compartilhado > role da instância).
type Settings struct {
	Region  string
	Profile string
	Timeout time.Duration
}

// Load monta o aws.Config. Um profile explícito tem precedência sobre as
// credenciais do ambiente.
func Load(ctx context.Context, s Settings) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if s.Region != "" {
		opts = append(opts, config.WithRegion(s.Region))
	}
	if s.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.Profile))
	}
	if s.Timeout > 0 {
		opts = append(opts, config.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(s.Timeout)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		if s.Profile != "" {
			return aws.Config{}, fmt.Errorf("falha ao carregar profile AWS '%s': %w", s.Profile, err)
		}
		return aws.Config{}, fmt.Errorf("falha ao carregar configuração AWS: %w", err)
	}
	return cfg, nil
}

// NewDynamoDB cria o cliente DynamoDB. endpoint permite apontar para o
// DynamoDB Local (ex: http://localhost:8000).
func NewDynamoDB(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
