package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/roster/internal/config"
	"github.com/rogersnm/roster/internal/dirlink"
	"github.com/rogersnm/roster/internal/flatfile"
	"github.com/rogersnm/roster/internal/logger"
	"github.com/rogersnm/roster/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version  = "dev"
	dataDir  string
	dataFile string
	verbose  bool
	st       *store.Store
	cfg      *config.Config
	log      = zap.NewNop()
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".roster")
	}
	return filepath.Join(home, ".roster")
}

var rootCmd = &cobra.Command{
	Use:     "roster",
	Short:   "Keep a small employee roster in a flat CSV file",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := resolveDataFile(cfg); err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log, err = logger.New(level, cfg.LogFormat)
		if err != nil {
			return err
		}

		// Config and link commands work without loading the roster.
		if group := commandGroup(cmd); group == "config" || group == "link" {
			return nil
		}

		st, err = openStore(cfg)
		return err
	},
	SilenceUsage: true,
}

// resolveDataFile picks the roster file: --file, then ROSTER_DATA_FILE,
// then a .roster-file link above the working directory, then config.yaml.
func resolveDataFile(c *config.Config) error {
	if dataFile != "" {
		c.DataFile = dataFile
		return nil
	}
	if os.Getenv(config.EnvDataFile) != "" {
		return nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	link, ok, err := dirlink.Find(cwd)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dirlink.FileName, err)
	}
	if ok {
		c.DataFile = link.Path()
	}
	return nil
}

// commandGroup returns the name of the top-level command cmd belongs to.
func commandGroup(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

func openStore(c *config.Config) (*store.Store, error) {
	var opts []flatfile.Option
	if c.StrictRows {
		opts = append(opts, flatfile.WithStrictRows())
	}
	codec := flatfile.New(c.DataFile, opts...)
	s, err := store.Open(codec, store.WithLogger(log.With(zap.String("file", codec.Path()))))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "directory holding config.yaml")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "F", "", "roster file (overrides data_file from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"add": {
				Examples: []mtp.Example{
					{Description: "Add an employee", Command: "roster add \"Alice Martin\" Engineer 50000"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of active employees with ID, name, role and salary",
				},
			},
			"show": {
				Examples: []mtp.Example{
					{Description: "Show one employee", Command: "roster show 2"},
				},
			},
			"update": {
				Examples: []mtp.Example{
					{Description: "Give an employee a raise", Command: "roster update 2 --salary 65000"},
					{Description: "Rename and change role", Command: "roster update 2 --name \"Bob Stone\" --role Director"},
				},
			},
			"edit": {
				Examples: []mtp.Example{
					{Description: "Edit an employee in $EDITOR", Command: "roster edit 2"},
				},
			},
			"delete": {
				Examples: []mtp.Example{
					{Description: "Deactivate an employee (interactive confirm)", Command: "roster delete 1"},
					{Description: "Deactivate an employee (skip confirm)", Command: "roster delete 1 --force"},
				},
			},
			"search": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of active employees whose name contains the query (case-sensitive)",
				},
				Examples: []mtp.Example{
					{Description: "Find employees by name", Command: "roster search Bo"},
				},
			},
			"export": {
				Examples: []mtp.Example{
					{Description: "Export active employees to Excel", Command: "roster export roster.xlsx"},
					{Description: "Include inactive employees", Command: "roster export roster.xlsx --all"},
				},
			},
			"report": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Headcount and payroll summary",
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	defer func() { _ = log.Sync() }()
	return rootCmd.Execute()
}
