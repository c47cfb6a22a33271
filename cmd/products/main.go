package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/raywall/products-cli/dyndb"
	"github.com/raywall/products-cli/pkg/awsenv"
	"github.com/raywall/products-cli/pkg/catalog"
	"github.com/raywall/products-cli/pkg/config"
	"github.com/raywall/products-cli/pkg/console"
	"github.com/raywall/products-cli/pkg/inspect"
	"github.com/raywall/products-cli/pkg/intake"
	"github.com/raywall/products-cli/pkg/logger"
	"github.com/raywall/products-cli/pkg/metrics"
	"github.com/raywall/products-cli/pkg/observability"
	"github.com/raywall/products-cli/pkg/rules"
	"github.com/raywall/products-cli/pkg/schema"
	"github.com/rs/zerolog"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	// Variáveis injetáveis para mocking
	newDynamoClient = defaultDynamoClient
	loadConfig      = config.Load
	setupMetrics    = observability.SetupMetrics
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func defaultDynamoClient(ctx context.Context, cfg *config.CLIConfig) (dyndb.DynamoDBClient, error) {
	awsCfg, err := awsenv.Load(ctx, awsenv.Settings{
		Region:  cfg.AWS.Region,
		Profile: cfg.AWS.Profile,
		Timeout: cfg.AWS.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return awsenv.NewDynamoDB(awsCfg, cfg.AWS.Endpoint), nil
}

type cliArgs struct {
	profile    string
	create     bool
	get        string
	schema     bool
	count      bool
	configPath string
	noColor    bool
}

var errUsage = errors.New("usage")

// parseArgs aceita o profile posicional antes ou depois das flags.
func parseArgs(args []string, stderr io.Writer) (cliArgs, error) {
	a := cliArgs{configPath: os.Getenv(config.EnvConfigPath)}

	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&a.create, "create", false, "create a product interactively")
	fs.BoolVar(&a.create, "c", false, "shorthand for --create")
	fs.StringVar(&a.get, "get", "", "show one product by `productID`")
	fs.StringVar(&a.get, "g", "", "shorthand for --get")
	fs.BoolVar(&a.schema, "schema", false, "print the reference contract of the tables")
	fs.BoolVar(&a.count, "count", false, "also count items with a full scan (connectivity check only)")
	fs.StringVar(&a.configPath, "config", a.configPath, "config file: path, file:// or s3:// (env "+config.EnvConfigPath+")")
	fs.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: products [profile] [--create | --get <productID> | --schema] [--count]")
		fmt.Fprintln(fs.Output(), "\nWithout a command, checks the connection and describes the tables.")
		fmt.Fprintln(fs.Output(), "\nFlags:")
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return a, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}

	if len(positional) > 1 {
		fmt.Fprintf(stderr, "too many arguments: %s\n", strings.Join(positional, " "))
		return a, errUsage
	}
	if len(positional) == 1 {
		a.profile = positional[0]
	}

	commands := 0
	for _, set := range []bool{a.create, a.get != "", a.schema} {
		if set {
			commands++
		}
	}
	if commands > 1 {
		fmt.Fprintln(stderr, "--create, --get and --schema are mutually exclusive")
		return a, errUsage
	}
	if a.count && commands > 0 {
		fmt.Fprintln(stderr, "--count only applies to the connectivity check")
		return a, errUsage
	}
	return a, nil
}

// run contém a lógica principal testável
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	printer := console.New(stdout, a.noColor)

	if a.schema {
		guide, err := schema.Load()
		if err != nil {
			printer.Error("%v", err)
			return exitFailure
		}
		guide.Print(printer)
		return exitOK
	}

	cfg, err := loadConfig(ctx, a.configPath, a.profile)
	if err != nil {
		printer.Error("configuration: %v", err)
		return exitFailure
	}

	log := logger.Configure(cfg.Logging, stderr)
	log.Debug().Str("table", cfg.Table.Name).Str("region", cfg.AWS.Region).Str("profile", cfg.AWS.Profile).Msg("configuração carregada")

	provider, err := setupMetrics(cfg.Metrics)
	if err != nil {
		log.Warn().Err(err).Msg("métricas desabilitadas")
		provider = &observability.NoopProvider{}
	}
	defer func() {
		if err := provider.Close(); err != nil {
			log.Debug().Err(err).Msg("falha ao descarregar métricas")
		}
	}()
	recorder := metrics.NewRecorder(provider, log, "table:"+cfg.Table.Name)

	client, err := newDynamoClient(ctx, cfg)
	if err != nil {
		printer.Error("AWS setup: %v", err)
		printer.Hint("check the profile name and your AWS configuration files")
		return exitFailure
	}
	store := dyndb.New(client, dyndb.TableConfig[catalog.Product]{
		TableName: cfg.Table.Name,
		HashKey:   catalog.HashKey,
	})

	switch {
	case a.create:
		err = runCreate(ctx, cfg, store, stdin, printer, recorder, log)
	case a.get != "":
		err = runGet(ctx, store, a.get, printer)
	default:
		err = runInspect(ctx, cfg, client, store, a.count, printer, log)
	}
	if err != nil {
		return report(printer, cfg, err)
	}
	return exitOK
}

func runCreate(ctx context.Context, cfg *config.CLIConfig, store dyndb.Store[catalog.Product], stdin io.Reader, printer *console.Printer, recorder *metrics.Recorder, log zerolog.Logger) error {
	attrRules, err := rules.NewAttributeRules(cfg.Intake.AttributeRules)
	if err != nil {
		return fmt.Errorf("intake rules: %w", err)
	}

	pipeline := intake.New(store, intake.Options{
		Rules:          attrRules,
		MaxPutAttempts: cfg.Intake.MaxPutAttempts,
		Metrics:        recorder,
		Logger:         log,
	})

	dialog := intake.NewDialog(stdin, printer)
	defer dialog.Close()

	printer.Header("New product (" + cfg.Table.Name + ")")
	product, err := pipeline.Run(ctx, dialog)
	if err != nil {
		return err
	}

	printer.Success("product %s created", product.ID)
	printProduct(printer, product)
	return nil
}

func runGet(ctx context.Context, store dyndb.Store[catalog.Product], id string, printer *console.Printer) error {
	product, err := store.Get(ctx, id, nil)
	if err != nil {
		return err
	}
	printProduct(printer, product)
	return nil
}

func runInspect(ctx context.Context, cfg *config.CLIConfig, client dyndb.TableDescriber, counter inspect.Counter, live bool, printer *console.Printer, log zerolog.Logger) error {
	guide, err := schema.Load()
	if err != nil {
		return err
	}
	_, err = inspect.New(client, counter, guide, printer, log).Run(ctx, inspect.Options{
		Table:         cfg.Table.Name,
		Collaborators: cfg.Table.Collaborators,
		HashKey:       catalog.HashKey,
		LiveCount:     live,
	})
	return err
}

// report traduz o erro do comando para a mensagem ao operador.
func report(printer *console.Printer, cfg *config.CLIConfig, err error) int {
	var wf *intake.WriteFailure

	switch {
	case errors.Is(err, intake.ErrAborted):
		printer.Warn("aborted, nothing was saved")
	case errors.As(err, &wf) && wf.OutcomeUnknown:
		printer.Error("could not confirm the write of product %s: %v", wf.ProductID, wf.Err)
		printer.Hint("the product may or may not exist; check with --get %s before retrying", wf.ProductID)
	case dyndb.IsAuth(err):
		printer.Error("access denied: %v", err)
		printer.Hint("check the credentials: profile argument, AWS_PROFILE or AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY")
		if cfg.AWS.Profile != "" {
			printer.Hint("profile in use: %s", cfg.AWS.Profile)
		}
	case errors.As(err, &wf):
		printer.Error("product was not saved: %v", wf.Err)
	case errors.Is(err, dyndb.ErrNotFound):
		printer.Warn("product not found")
	case errors.Is(err, dyndb.ErrTableNotFound):
		printer.Error("table '%s' not found", cfg.Table.Name)
		printer.Hint("run without arguments to check the tables, or --schema for the expected layout")
	default:
		printer.Error("%v", err)
	}
	return exitFailure
}

func printProduct(printer *console.Printer, p *catalog.Product) {
	printer.Header("Product " + p.ID)
	printer.Field("Name", p.Name)
	printer.Field("Category", p.Category)
	printer.Field("Sub-category", p.SubCategory)
	printer.Field("Stock mode", p.StockMode)
	printer.Field("Status", p.Status)
	printer.Field("Created", p.CreatedAt.UTC().Format(time.RFC3339))
	printer.Field("Variants", len(p.Variants))
	for _, v := range p.Variants {
		line := fmt.Sprintf("%s  %s  qty=%d  price=%s", v.ID, v.Name, v.StockQuantity, v.Price.StringFixed(2))
		if attrs := formatAttributes(v.Attributes); attrs != "" {
			line += "  " + attrs
		}
		printer.Info("%s", line)
	}
}

func formatAttributes(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, ", ")
}
