package logger

import (
	"io"
	"strings"
	"time"

	"github.com/raywall/products-cli/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger a partir da configuração. w é o destino dos
// logs de diagnóstico (stderr no binário), nunca o mesmo stream do diálogo.
func Configure(cfg config.LoggingConf, w io.Writer) zerolog.Logger {
	// Define o nível de log (default: warn)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	output := w
	switch {
	case level == zerolog.Disabled:
		output = io.Discard
	case cfg.Format == "console":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
