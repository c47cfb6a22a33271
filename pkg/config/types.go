package config

import "time"

// CLIConfig é a configuração resolvida uma única vez no início do processo.
// Depois de Load ela é tratada como somente leitura.
type CLIConfig struct {
	AWS     AWSConf     `yaml:"aws"`
	Table   TableConf   `yaml:"table"`
	Intake  IntakeConf  `yaml:"intake"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

type AWSConf struct {
	Region   string        `yaml:"region" env:"AWS_REGION" envDefault:"ap-south-1" validate:"required"`
	Profile  string        `yaml:"profile" env:"AWS_PROFILE"`
	Endpoint string        `yaml:"endpoint" env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"`
	Timeout  time.Duration `yaml:"timeout" env:"PRODUCTS_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

type TableConf struct {
	Name          string   `yaml:"name" env:"PRODUCTS_TABLE" envDefault:"Products" validate:"required"`
	Collaborators []string `yaml:"collaborators" env:"PRODUCTS_COLLABORATOR_TABLES" envDefault:"Pincode_management,Delivery_types" validate:"dive,required"`
}

type IntakeConf struct {
	// AttributeRules: expressão CEL por chave de atributo do variant.
	// Variáveis disponíveis: key, value e attrs.
	AttributeRules map[string]string `yaml:"attribute_rules" validate:"dive,keys,required,endkeys,required"`
	MaxPutAttempts int               `yaml:"max_put_attempts" env:"PRODUCTS_MAX_PUT_ATTEMPTS" envDefault:"3" validate:"gte=1,lte=10"`
}

type LoggingConf struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"console" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE"`
}
