package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/greatxrider/interactive-form-project/app"
	"github.com/greatxrider/interactive-form-project/catalog"
	"github.com/greatxrider/interactive-form-project/config"
	"github.com/greatxrider/interactive-form-project/form"
	"github.com/greatxrider/interactive-form-project/http/validation"
	"github.com/greatxrider/interactive-form-project/logging"
	"github.com/greatxrider/interactive-form-project/report"
)

// Version is set during build using ldflags
var Version = "dev"

var envFileFlag = &cli.StringSliceFlag{
	Name:    "env-file",
	Aliases: []string{"e"},
	Usage:   "dotenv file(s) to load before reading the environment",
}

var catalogFlag = &cli.StringFlag{
	Name:    "catalog",
	Aliases: []string{"c"},
	Usage:   "catalogue file (.yaml, .yml or .toml); overrides FORM_CATALOG",
}

func main() {
	cmd := &cli.Command{
		Name:    "registration",
		Version: Version,
		Usage:   "Conference registration form validation service",
		Commands: []*cli.Command{
			serveCmd,
			checkCmd,
			catalogCmd,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the form API",
	Flags: []cli.Flag{envFileFlag, catalogFlag},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg := loadConfig(cmd)
		logger := logging.SetupLogger(cfg.Log.Format, cfg.Log.Level)

		application, err := app.NewWithConfig(cfg, logger)
		if err != nil {
			return err
		}
		return application.Run(ctx)
	},
}

var checkCmd = &cli.Command{
	Name:      "check",
	Usage:     "Run the submission gate over a form snapshot file (YAML or JSON)",
	ArgsUsage: "<snapshot>",
	Flags:     []cli.Flag{envFileFlag, catalogFlag},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("snapshot file path required")
		}
		path := cmd.Args().Get(0)

		snap, err := readSnapshot(path)
		if err != nil {
			return err
		}
		cat, err := catalog.Load(loadConfig(cmd).Form.Catalog)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		ctrl, err := form.NewController(validation.NewRegistry(), cat.Options())
		if err != nil {
			return err
		}
		if err := ctrl.Restore(snap); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		sub := ctrl.Submit()
		fmt.Println(report.Submission(ctrl.View(), sub))
		if !sub.Allowed {
			return fmt.Errorf("%s: %d field(s) invalid", filepath.Base(path), len(sub.Errors.Bag))
		}
		return nil
	},
}

var catalogCmd = &cli.Command{
	Name:  "catalog",
	Usage: "Print the loaded catalogue",
	Flags: []cli.Flag{envFileFlag, catalogFlag},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cat, err := catalog.Load(loadConfig(cmd).Form.Catalog)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		fmt.Println(report.Catalog(cat))
		return nil
	},
}

func loadConfig(cmd *cli.Command) *config.Config {
	cfg := config.Load(cmd.StringSlice("env-file")...)
	if path := cmd.String("catalog"); path != "" {
		cfg.Form.Catalog = path
	}
	return cfg
}

// readSnapshot decodes a snapshot file. YAML is a superset of JSON, so one
// decoder covers both.
func readSnapshot(path string) (form.Snapshot, error) {
	var snap form.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read snapshot: %w", err)
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}
