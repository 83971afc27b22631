package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/config"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/log"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/store"
	_ "github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/store/sqlite"
)

// app holds state shared by subcommands after PersistentPreRunE.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "targetdetect",
		Short: "Detect the supervised target column of a tabular dataset",
		Long: `targetdetect scores every column of a CSV file as a candidate prediction
target and either selects one automatically or asks for confirmation.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the config")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
	pf.StringVar(&a.logFormat, "log-format", "", "log format (json, console, cloud); overrides the config")

	root.AddCommand(detectCmd(a))
	root.AddCommand(showCmd(a))
	root.AddCommand(versionCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "failed to load %s", a.envFile)
		}
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	logger, err := log.Setup(a.stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.With(log.ComponentKey, cmd.Name())
	return nil
}

// openStore opens the configured backend. dirOverride replaces the file
// store directory when non-empty.
func (a *app) openStore(cmd *cobra.Command, dirOverride string) (store.Store, error) {
	sc := a.cfg.Store
	location := sc.Dir
	switch sc.Driver {
	case config.DriverNone:
		return nil, nil
	case config.DriverSQLite:
		location = sc.DSN
	default:
		if dirOverride != "" {
			location = dirOverride
		}
	}
	return store.Open(cmd.Context(), store.Config{Driver: sc.Driver, Location: location})
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = io.WriteString(a.stdout, "targetdetect "+version+"\n")
		},
	}
}
