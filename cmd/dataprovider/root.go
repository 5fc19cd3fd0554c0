package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/dataprovider/config"
	"github.com/kbukum/dataprovider/dataprovider"
	"github.com/kbukum/dataprovider/logger"
	"github.com/kbukum/dataprovider/observability"
	"github.com/kbukum/dataprovider/provider"
	"github.com/kbukum/dataprovider/rest"
	"github.com/kbukum/dataprovider/validation"
	"github.com/kbukum/dataprovider/version"
)

// app carries the state shared by all subcommands. It is filled in by the
// root PersistentPreRunE.
type app struct {
	configFile string
	clientName string
	jsonOutput bool
	numericIDs bool

	cfg      appConfig
	log      *logger.Logger
	metrics  *observability.Metrics
	registry *provider.Registry[dataprovider.DataProvider]
	client   clientConfig
	dp       dataprovider.DataProvider
	shutdown []func(context.Context) error
}

// Commands that run without a configured client.
var standalone = map[string]bool{
	"version": true,
	"serve":   true,
	"help":    true,
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.command()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(stderr, err, a.jsonOutput)
		_ = a.close(ctx)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	return (&app{}).command()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "dataprovider",
		Short:         "Run data provider operations against a configured backend",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./config.yml or ./cmd/dataprovider/config.yml)")
	flags.StringVar(&a.clientName, "client", "", "client name from the clients section (default: the only one)")
	flags.BoolVar(&a.jsonOutput, "json", false, "print results as indented JSON")
	flags.BoolVar(&a.numericIDs, "numeric-ids", false, "treat identifier arguments as integers")

	root.AddCommand(
		newResourcesCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newRefsCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newUpdateManyCmd(a),
		newDeleteCmd(a),
		newDeleteManyCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration, initializes logging and telemetry, and builds
// the selected client through the provider registry.
func (a *app) setup(cmd *cobra.Command) error {
	if standalone[cmd.Name()] {
		a.log = logger.NewDefault(serviceName)
		return nil
	}

	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if err := config.LoadConfig(serviceName, &a.cfg, opts...); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := validation.Validate(&a.cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.log = logger.NewWithWriter(&a.cfg.Logging, a.cfg.Name, cmd.ErrOrStderr())
	logger.SetGlobalLogger(a.log)

	if err := a.initTelemetry(cmd.Context()); err != nil {
		return err
	}

	name, client, err := a.cfg.selectClient(a.clientName)
	if err != nil {
		return err
	}
	a.client = client

	a.registry = provider.NewRegistry[dataprovider.DataProvider]()
	a.registry.RegisterFactory(defaultProvider, rest.NewFactory(
		rest.WithLogger(a.log),
		rest.WithMetrics(a.metrics),
	))
	a.shutdown = append(a.shutdown, a.registry.Close)
	dp, err := a.registry.Build(name, client.Provider, client.options(name))
	if err != nil {
		return err
	}
	a.dp = dataprovider.WithLogging(dp, a.log)

	a.log.Debug("client ready", logger.Fields("client", name, "provider", client.Provider, "url", client.URL))
	return nil
}

func (a *app) initTelemetry(ctx context.Context) error {
	t := a.cfg.Telemetry
	if !t.Enabled {
		return nil
	}

	tc := observability.DefaultTracerConfig(a.cfg.Name)
	tc.ServiceVersion = version.Short()
	tc.Environment = a.cfg.Environment
	tc.Endpoint = t.Endpoint
	tc.Insecure = t.Insecure
	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	a.shutdown = append(a.shutdown, tp.Shutdown)

	mc := observability.DefaultMeterConfig(a.cfg.Name)
	mc.ServiceVersion = tc.ServiceVersion
	mc.Environment = a.cfg.Environment
	mc.Endpoint = t.Endpoint
	mc.Insecure = t.Insecure
	mp, err := observability.InitMeter(ctx, mc)
	if err != nil {
		return fmt.Errorf("init meter: %w", err)
	}
	a.shutdown = append(a.shutdown, mp.Shutdown)

	a.metrics, err = observability.NewMetrics(observability.Meter(a.cfg.Name))
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	return nil
}

// close releases the client and flushes telemetry, in reverse setup order.
func (a *app) close(ctx context.Context) error {
	var firstErr error
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](context.WithoutCancel(ctx)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.shutdown = nil
	return firstErr
}
