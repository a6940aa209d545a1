package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sokinpui/mdsplit.go/internal/parser"
)

const (
	DefaultInput     = "docs/chargeback-evidence-app.md"
	DefaultOutputDir = "chargeback-evidence-app"

	envPrefix  = "MDSPLIT"
	configName = ".mdsplit"
)

var envKeyReplacer = strings.NewReplacer("-", "_")

// Config holds all the command-line flag values.
type Config struct {
	Input       string
	OutputDir   string
	Create      bool
	Clipboard   bool
	Outline     bool
	NoAnimation bool
	Extensions  []string
}

// ParseArgs defines and parses command-line flags using pflag, then layers
// environment variables and an optional config file underneath them with
// viper.
func ParseArgs(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("mdsplit", pflag.ContinueOnError)
	// Parse errors are returned and reported by the caller.
	flags.SetOutput(io.Discard)

	// Define flags
	flags.StringP("output-dir", "o", DefaultOutputDir, "Output directory.")
	flags.Bool("dry-run", true, "Preview actions without writing (default behaviour).")
	flags.Bool("create", false, "Actually write files (overrides --dry-run).")
	flags.BoolP("clipboard", "c", false, "Read the document from the clipboard instead of a file.")
	flags.Bool("outline", false, "List level 2 and 3 headings and exit.")
	flags.Bool("no-animation", false, "Disable the spinner and print plain output.")
	flags.StringSliceP("extension", "e", []string{}, "Only write files with these extensions (e.g., 'sql', 'ts').")
	flags.String("config", "", "Config file (default: ./.mdsplit.yaml).")

	flags.Usage = func() {
		fmt.Println("Usage: mdsplit [flags] [input]")
		fmt.Println("\nSplit a markdown document into files named by its headings.")
		fmt.Printf("Reads %s by default; use '-' for stdin.\n", DefaultInput)
		fmt.Printf("Headings ending in %s mark files.\n", strings.Join(parser.Extensions, " "))
		fmt.Println("\nExample: mdsplit docs/app.md -o app --create")
		fmt.Println("\nFlags:")
		fmt.Print(flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetDefault("input", DefaultInput)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := readConfig(v, v.GetString("config")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Input:       v.GetString("input"),
		OutputDir:   v.GetString("output-dir"),
		Create:      v.GetBool("create"),
		Clipboard:   v.GetBool("clipboard"),
		Outline:     v.GetBool("outline"),
		NoAnimation: v.GetBool("no-animation"),
	}
	if flags.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d", flags.NArg())
	}
	if flags.NArg() == 1 {
		cfg.Input = flags.Arg(0)
	}

	// Validate mutually exclusive flags
	if cfg.Create && cfg.Outline {
		return nil, fmt.Errorf("--create and --outline are mutually exclusive")
	}

	// Normalize extensions
	for _, item := range v.GetStringSlice("extension") {
		// Environment values arrive unsplit, e.g. "sql,ts".
		for _, ext := range strings.Split(item, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if ext[0] != '.' {
				ext = "." + ext
			}
			cfg.Extensions = append(cfg.Extensions, ext)
		}
	}

	return cfg, nil
}

func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
