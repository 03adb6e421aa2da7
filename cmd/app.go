// Package cmd implements the fnav command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/sheet"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// DefaultConfigFile is read when present in the working directory.
const DefaultConfigFile = "fnav.toml"

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "analytics")
	c.Register(&validateCmd{}, "analytics")
	c.Register(&irrCmd{}, "analytics")
	c.Register(&navCmd{}, "analytics")
	c.Register(&hedgeCmd{}, "analytics")

	c.Register(&explainCmd{}, "assistant")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a TOML configuration file (default "+DefaultConfigFile+" when present)")
var rawOutput = flag.Bool("raw", false, "Print markdown as is, without terminal rendering")

// loadConfig loads the default configuration file, then the one given by -config.
func loadConfig() (*Config, error) {
	if *configFile != "" {
		if _, err := os.Stat(*configFile); err != nil {
			return nil, fmt.Errorf("config file %q: %w", *configFile, err)
		}
	}
	return LoadConfig(DefaultConfigFile, *configFile)
}

// inputFlags are the flags shared by every command reading a ledger.
// Flags left empty fall back on the configuration.
type inputFlags struct {
	file  string
	sheet string
	fund  string
	debug bool
}

func (in *inputFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&in.file, "file", "", "Input ledger (.xlsx, .csv or .json)")
	f.StringVar(&in.sheet, "sheet", "", "Workbook sheet to read, the first one by default")
	f.StringVar(&in.fund, "fund", "", "Fund to analyse")
	f.BoolVar(&in.debug, "v", false, "Verbose: log every step at debug level")
}

// resolve applies the flags set on the command line over 'cfg'.
func (in *inputFlags) resolve(cfg *Config) {
	if in.file != "" {
		cfg.Input.File = in.file
	}
	if in.sheet != "" {
		cfg.Input.Sheet = in.sheet
	}
	if in.fund != "" {
		cfg.Fund.Name = in.fund
	}
	if in.debug {
		cfg.Logging.Level = "debug"
	}
}

// session is the state common to all commands: configuration, logger and rows.
type session struct {
	cfg  *Config
	log  *zap.Logger
	rows []fundnav.Row
}

// open loads the configuration, the logger and the ledger rows.
// The returned status is meaningful only on error.
func (in *inputFlags) open() (*session, subcommands.ExitStatus, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, subcommands.ExitUsageError, err
	}
	in.resolve(cfg)

	log, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, subcommands.ExitUsageError, err
	}

	rows, err := sheet.Open(cfg.Input.File, sheet.Options{Sheet: cfg.Input.Sheet, JSONPath: cfg.Input.JSONPath})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, subcommands.ExitFailure, fmt.Errorf("%w (use -file or [input] file in %s)", err, DefaultConfigFile)
		}
		return nil, subcommands.ExitFailure, err
	}
	log.Debug("rows read", zap.String("file", cfg.Input.File), zap.Int("rows", len(rows)))
	return &session{cfg: cfg, log: log, rows: rows}, subcommands.ExitSuccess, nil
}

// run runs the pipeline over the session rows.
func (s *session) run(hedge fundnav.HedgeOptions) (*fundnav.Result, error) {
	p := fundnav.Pipeline{Logger: s.log, Hedge: hedge}
	return p.Run(s.rows, s.cfg.Fund.Name)
}

// fail prints the error and returns 'status'.
func fail(status subcommands.ExitStatus, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return status
}

// printMarkdown prints 'md' rendered for the terminal, or raw with -raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
