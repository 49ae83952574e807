package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type convertCmd struct {
	OutputDir   string `long:"output-dir" env:"OUTPUT_DIR" default:"." description:"Directory the converted documents are written to"`
	Format      string `long:"format" env:"FORMAT" default:"json" choice:"json" choice:"yaml" description:"Output format"`
	MetaOnly    bool   `long:"meta-only" description:"Skip episodes and live episodes"`
	WorkerCount int    `long:"workers" env:"WORKER_COUNT" default:"4" description:"Number of feeds converted concurrently"`
	Indent      bool   `long:"indent" description:"Indent JSON output"`

	Args struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

type serveCmd struct {
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for /parse (optional)"`
	MaxBodySize  int64  `long:"max-body-size" env:"MAX_BODY_SIZE" default:"10485760" description:"Largest accepted feed document in bytes"`
}

type rawCfg struct {
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Convert convertCmd `command:"convert" description:"Convert podcast feed files to JSON or YAML"`
	Serve   serveCmd   `command:"serve" description:"Serve the feed parser over HTTP"`
}

var globalCfg *Cfg

// Load reads the command line and environment. It returns nil, nil when
// help was requested.
func Load() (*Cfg, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Command:      Command(parser.Active.Name),
		Debug:        raw.Debug,
		Files:        raw.Convert.Args.Files,
		OutputDir:    raw.Convert.OutputDir,
		Format:       raw.Convert.Format,
		MetaOnly:     raw.Convert.MetaOnly,
		Indent:       raw.Convert.Indent,
		WorkerCount:  raw.Convert.WorkerCount,
		Port:         raw.Serve.Port,
		APIAccessKey: raw.Serve.APIAccessKey,
		MaxBodySize:  raw.Serve.MaxBodySize,
		Version:      GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func (c *Cfg) validate() error {
	switch c.Command {
	case CommandConvert:
		if c.WorkerCount < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", c.WorkerCount)
		}
	case CommandServe:
		if c.MaxBodySize < 1 {
			return fmt.Errorf("max-body-size must be positive, got %d", c.MaxBodySize)
		}
	}
	return nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
