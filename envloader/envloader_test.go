package envloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StringFields(t *testing.T) {
	type Config struct {
		Region string `env:"TEST_REGION" envDefault:"ap-south-1"`
		Table  string `env:"TEST_TABLE" envDefault:"Products"`
	}

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "ap-south-1", config.Region)
	assert.Equal(t, "Products", config.Table)

	t.Setenv("TEST_REGION", "us-east-1")
	t.Setenv("TEST_TABLE", "Products-dev")

	config = &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "us-east-1", config.Region)
	assert.Equal(t, "Products-dev", config.Table)
}

func TestLoad_NumericAndBoolFields(t *testing.T) {
	type Config struct {
		Attempts int     `env:"TEST_ATTEMPTS" envDefault:"3"`
		Small    int8    `env:"TEST_SMALL"`
		Port     uint16  `env:"TEST_PORT" envDefault:"8125"`
		Enabled  bool    `env:"TEST_ENABLED" envDefault:"false"`
		Rate     float64 `env:"TEST_RATE" envDefault:"0.5"`
	}

	t.Setenv("TEST_SMALL", "12")
	t.Setenv("TEST_ENABLED", "TRUE")

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, 3, config.Attempts)
	assert.Equal(t, int8(12), config.Small)
	assert.Equal(t, uint16(8125), config.Port)
	assert.True(t, config.Enabled)
	assert.Equal(t, 0.5, config.Rate)
}

func TestLoad_Duration(t *testing.T) {
	type Config struct {
		Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"10s"`
		Backoff time.Duration `env:"TEST_BACKOFF"`
	}

	t.Setenv("TEST_BACKOFF", "1m30s")

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 90*time.Second, config.Backoff)
}

func TestLoad_StringSlice(t *testing.T) {
	type Config struct {
		Tables []string `env:"TEST_TABLES" envDefault:"Pincode_management,Delivery_types"`
	}

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, []string{"Pincode_management", "Delivery_types"}, config.Tables)

	t.Setenv("TEST_TABLES", " a, b,, c ")
	config = &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, []string{"a", "b", "c"}, config.Tables)
}

func TestLoad_ExistingValueBeatsDefault(t *testing.T) {
	type Config struct {
		Table string `env:"TEST_TABLE" envDefault:"Products"`
	}

	// valor vindo do YAML
	config := &Config{Table: "FromFile"}
	require.NoError(t, Load(config))
	assert.Equal(t, "FromFile", config.Table)

	t.Setenv("TEST_TABLE", "FromEnv")
	require.NoError(t, Load(config))
	assert.Equal(t, "FromEnv", config.Table)
}

func TestLoad_WithoutEnvTag(t *testing.T) {
	type Config struct {
		Field1 string `env:"TEST_FIELD1" envDefault:"default1"`
		Field2 string
	}

	config := &Config{Field2: "original"}
	require.NoError(t, Load(config))
	assert.Equal(t, "default1", config.Field1)
	assert.Equal(t, "original", config.Field2)
}

func TestLoad_EmptyEnvVar(t *testing.T) {
	type Config struct {
		Value string `env:"TEST_EMPTY" envDefault:"default"`
	}

	t.Setenv("TEST_EMPTY", "")

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "default", config.Value)
}

func TestLoad_InvalidConfig(t *testing.T) {
	var notPtr struct{}
	err := Load(notPtr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a pointer to struct")

	s := "x"
	err = Load(&s)
	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "pointer to string")
}

func TestLoad_ConversionErrors(t *testing.T) {
	type Config struct {
		Attempts int `env:"TEST_ATTEMPTS"`
	}

	t.Setenv("TEST_ATTEMPTS", "many")

	err := Load(&Config{})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Attempts", fieldErr.FieldName)
	assert.Equal(t, "TEST_ATTEMPTS", fieldErr.EnvVar)
	assert.Contains(t, err.Error(), "error setting field Attempts")
}

func TestLoad_UnsupportedType(t *testing.T) {
	type Config struct {
		Ports []int `env:"TEST_PORTS"`
	}

	t.Setenv("TEST_PORTS", "1,2")

	err := Load(&Config{})
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
}

func TestMustLoad(t *testing.T) {
	type Config struct {
		Value string `env:"TEST_MUST" envDefault:"ok"`
	}

	config := &Config{}
	assert.NotPanics(t, func() { MustLoad(config) })
	assert.Equal(t, "ok", config.Value)

	assert.Panics(t, func() { MustLoad(Config{}) })
}

func TestLoad_NestedStructs(t *testing.T) {
	type AWS struct {
		Region  string        `env:"TEST_AWS_REGION" envDefault:"ap-south-1"`
		Timeout time.Duration `env:"TEST_AWS_TIMEOUT" envDefault:"5s"`
	}
	type Logging struct {
		Level string `env:"TEST_LOG_LEVEL" envDefault:"warn"`
	}
	type Config struct {
		AWS     AWS
		Logging *Logging
	}

	t.Setenv("TEST_LOG_LEVEL", "debug")

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "ap-south-1", config.AWS.Region)
	assert.Equal(t, 5*time.Second, config.AWS.Timeout)
	require.NotNil(t, config.Logging)
	assert.Equal(t, "debug", config.Logging.Level)
}
