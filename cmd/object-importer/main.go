package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/object-importer/internal/pkg/application/objectimporter"
	"github.com/diwise/object-importer/internal/pkg/infrastructure/journal"
	"github.com/diwise/object-importer/internal/pkg/infrastructure/router"
	"github.com/diwise/object-importer/internal/pkg/presentation/api"
	"github.com/diwise/object-importer/pkg/objectstore/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

const serviceName string = "object-importer"

func DefaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",
		opaPath:       "/opt/diwise/config/authz.rego",
		logFormat:     "json",
		runMode:       modeServe,
	}
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, flags := parseExternalConfig(context.Background(), DefaultFlags())

	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfiguration(ctx, flags)
	if err != nil {
		fatal(ctx, "failed to load configuration", err)
	}

	j := journal.Discard()

	if flags[runMode] != modeAnalyze {
		if cfg.Store.URL == "" {
			fatal(ctx, "no object store configured", errors.New("set OBJECTSTORE_URL or store.url"))
		}

		j, err = journal.Open(ctx, journal.LoadConfiguration(ctx))
		if err != nil {
			fatal(ctx, "failed to connect to journal database", err)
		}
	}

	app, err := newApp(ctx, cfg, j)
	if err != nil {
		fatal(ctx, "failed to create application", err)
	}
	defer app.Close()

	switch flags[runMode] {
	case modeServe:
		err = runServer(ctx, flags, app)
	case modeImport, modePreview, modeAnalyze:
		err = runBatch(ctx, flags, app, os.Stdout)
	default:
		err = fmt.Errorf("unknown mode %q, expected one of serve, import, preview or analyze", flags[runMode])
	}

	if err != nil {
		fatal(ctx, "object importer failed", err)
	}

	logger.Info("done")
}

func parseExternalConfig(ctx context.Context, flags FlagMap) (context.Context, FlagMap) {

	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[opaPath] = envOrDef(ctx, "OPA_POLICY_PATH", flags[opaPath])
	flags[configPath] = envOrDef(ctx, "CONFIG_PATH", flags[configPath])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("port", "tcp port to listen for api requests on", apply(servicePort))
	flag.Func("config", "path to the yaml configuration file", apply(configPath))
	flag.Func("policies", "path to the authorization policy file (rego)", apply(opaPath))
	flag.Func("file", "delimited text file to import, - for stdin", apply(inputFile))
	flag.Func("parent", "id of the store object that the import is placed under", apply(parentID))
	flag.Func("log-format", "log format, json or text", apply(logFormat))
	flag.Parse()

	if flag.NArg() > 0 {
		flags[runMode] = flag.Arg(0)
	}

	return ctx, flags
}

func loadConfiguration(ctx context.Context, flags FlagMap) (*objectimporter.Config, error) {
	cfg := objectimporter.DefaultConfig()

	if flags[configPath] != "" {
		f, err := os.Open(flags[configPath])
		if err != nil {
			return nil, fmt.Errorf("failed to open configuration file: %w", err)
		}
		defer f.Close()

		cfg, err = objectimporter.LoadConfiguration(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	}

	cfg.Store.URL = env.GetVariableOrDefault(ctx, "OBJECTSTORE_URL", cfg.Store.URL)

	return cfg, nil
}

func newApp(ctx context.Context, cfg *objectimporter.Config, j journal.Journal) (objectimporter.ObjectImporter, error) {
	store := client.NewObjectStoreClient(cfg.Store.URL,
		client.RateLimit(cfg.Store.RateLimit, cfg.Store.RateBurst),
		client.Timeout(cfg.Store.Timeout()),
		client.Debug(env.GetVariableOrDefault(ctx, "OBJECTSTORE_DEBUG", "false")),
		storeAuthentication(ctx),
	)

	return objectimporter.New(ctx, cfg, store, j)
}

// storeAuthentication prefers a fixed access token over the password grant.
// Without a token or a username requests are sent unauthenticated.
func storeAuthentication(ctx context.Context) client.ClientOption {
	token := env.GetVariableOrDefault(ctx, "OBJECTSTORE_TOKEN", "")
	username := env.GetVariableOrDefault(ctx, "OBJECTSTORE_USERNAME", "")

	if token != "" || username == "" {
		return client.AccessToken(token)
	}

	return client.Credentials(
		username,
		env.GetVariableOrDefault(ctx, "OBJECTSTORE_PASSWORD", ""),
		env.GetVariableOrDefault(ctx, "OBJECTSTORE_CLIENT_ID", ""),
		env.GetVariableOrDefault(ctx, "OBJECTSTORE_CLIENT_SECRET", ""),
	)
}

func runServer(ctx context.Context, flags FlagMap, app objectimporter.ObjectImporter) error {
	policies, err := os.Open(flags[opaPath])
	if err != nil {
		return fmt.Errorf("unable to open opa policy file: %w", err)
	}
	defer policies.Close()

	r := router.New(serviceName)

	err = api.RegisterHandlers(ctx, r, policies, app)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              flags[listenAddress] + ":" + flags[servicePort],
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	logging.GetFromContext(ctx).Info("starting to listen for connections", "port", flags[servicePort])

	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// runBatch runs a single import, preview or analysis and writes the outcome as
// json to out
func runBatch(ctx context.Context, flags FlagMap, app objectimporter.ObjectImporter, out io.Writer) error {
	input, err := openInput(flags[inputFile])
	if err != nil {
		return err
	}
	defer input.Close()

	var result any

	switch flags[runMode] {
	case modeAnalyze:
		result, err = app.Analyze(ctx, input)
	case modePreview:
		if flags[parentID] == "" {
			return errors.New("a parent object id is required, use -parent")
		}
		result, err = app.Preview(ctx, input, flags[parentID])
	case modeImport:
		if flags[parentID] == "" {
			return errors.New("a parent object id is required, use -parent")
		}
		result, err = app.Import(ctx, input, flags[parentID])
	}

	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("no input file given, use -file")
	}

	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return f, nil
}

func fatal(ctx context.Context, msg string, err error) {
	logging.GetFromContext(ctx).Error(msg, "err", err.Error())
	os.Exit(1)
}
