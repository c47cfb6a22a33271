package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raywall/products-cli/envloader"
	"github.com/raywall/products-cli/pkg/awsenv"
	"github.com/raywall/products-cli/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath é a variável que aponta o arquivo YAML opcional.
const EnvConfigPath = "PRODUCTS_CONFIG"

// Loader resolve a configuração da CLI. Precedência, da menor para a maior:
// envDefault < arquivo YAML < variáveis de ambiente < profile posicional.
type Loader struct {
	validator *ConfigValidator

	// Fábricas dos clientes AWS usados só quando o arquivo está no S3 ou
	// referencia ${ssm.}/${secret.}. Substituíveis em teste.
	NewS3       func(ctx context.Context, profile string) (awsenv.S3Client, error)
	NewResolver func(ctx context.Context, profile string) (injector.Resolver, error)
}

func NewLoader() *Loader {
	return &Loader{
		validator:   NewValidator(),
		NewS3:       defaultS3,
		NewResolver: defaultResolver,
	}
}

// Load é o atalho usado pelo main.
func Load(ctx context.Context, source, profile string) (*CLIConfig, error) {
	return NewLoader().Load(ctx, source, profile)
}

func (l *Loader) Load(ctx context.Context, source, profile string) (*CLIConfig, error) {
	cfg := &CLIConfig{}

	if source != "" {
		raw, err := l.read(ctx, source, profile)
		if err != nil {
			return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
		}
		if err := l.parse(ctx, raw, profile, cfg); err != nil {
			return nil, err
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, fmt.Errorf("falha ao carregar variáveis de ambiente: %w", err)
	}

	if profile != "" {
		cfg.AWS.Profile = profile
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return cfg, nil
}

func (l *Loader) read(ctx context.Context, source, profile string) ([]byte, error) {
	if strings.HasPrefix(source, "s3://") {
		client, err := l.NewS3(ctx, profile)
		if err != nil {
			return nil, err
		}
		return awsenv.ReadObject(ctx, client, source)
	}
	// Suporta tanto "file://products.yaml" quanto apenas "products.yaml"
	return os.ReadFile(strings.TrimPrefix(source, "file://"))
}

func (l *Loader) parse(ctx context.Context, raw []byte, profile string, cfg *CLIConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("YAML malformado: %w", err)
	}

	var resolver injector.Resolver
	if injector.NeedsRemote(string(raw)) {
		r, err := l.NewResolver(ctx, profile)
		if err != nil {
			return err
		}
		resolver = r
	}

	if err := injector.New(resolver).Inject(ctx, cfg); err != nil {
		return fmt.Errorf("falha na injeção de variáveis: %w", err)
	}
	return nil
}

// bootstrapSettings monta a região/profile usados para buscar a própria
// configuração (antes de o arquivo existir).
func bootstrapSettings(profile string) (awsenv.Settings, error) {
	var boot AWSConf
	if err := envloader.Load(&boot); err != nil {
		return awsenv.Settings{}, err
	}
	if profile != "" {
		boot.Profile = profile
	}
	return awsenv.Settings{Region: boot.Region, Profile: boot.Profile, Timeout: boot.Timeout}, nil
}

func defaultS3(ctx context.Context, profile string) (awsenv.S3Client, error) {
	s, err := bootstrapSettings(profile)
	if err != nil {
		return nil, err
	}
	awsCfg, err := awsenv.Load(ctx, s)
	if err != nil {
		return nil, err
	}
	return awsenv.NewS3(awsCfg), nil
}

func defaultResolver(ctx context.Context, profile string) (injector.Resolver, error) {
	s, err := bootstrapSettings(profile)
	if err != nil {
		return nil, err
	}
	awsCfg, err := awsenv.Load(ctx, s)
	if err != nil {
		return nil, err
	}
	return awsenv.NewParameterStore(awsCfg), nil
}
