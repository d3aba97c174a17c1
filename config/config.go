package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/lmittmann/tint"
	"github.com/thisisjab/exprzilla/api"
	"github.com/thisisjab/exprzilla/engine"
	"github.com/thisisjab/exprzilla/interp"
	"github.com/thisisjab/exprzilla/parser"
	"go.yaml.in/yaml/v3"
)

// DefaultPath is read when no config file is given explicitly.
const DefaultPath = "./exprzilla.yaml"

const defaultAPIAddr = "localhost:8000"

type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Parser ParserConfig `yaml:"parser"`
	Engine EngineConfig `yaml:"engine"`
	Watch  WatchConfig  `yaml:"watch"`
	API    any          `yaml:"api"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Type   string `yaml:"type"`
	Output string `yaml:"output"`
}

type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

type EngineConfig struct {
	WorkersCount uint `yaml:"workers_count"`
	BufferSize   uint `yaml:"buffer_size"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Runtime is the validated, ready to use form of Config.
type Runtime struct {
	Interp        interp.Options
	Engine        engine.Config
	WatchDebounce time.Duration
	API           api.Config
}

func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level:  "info",
			Type:   "colored-text",
			Output: "stderr",
		},
		Parser: ParserConfig{
			MaxDepth: parser.DefaultMaxDepth,
		},
		Engine: EngineConfig{
			WorkersCount: uint(runtime.NumCPU()),
			BufferSize:   64,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Load reads the YAML file at path on top of Default(). Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	fileContent, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file content: %w", err)
	}

	if err := yaml.Unmarshal(fileContent, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file: %w", err)
	}

	return cfg, nil
}

func (cfg Config) Parse() (*Runtime, *slog.Logger, error) {
	logger, err := parseLoggerConfig(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create logger: %w", err)
	}

	if cfg.Parser.MaxDepth < 0 {
		return nil, logger, fmt.Errorf("invalid parser max depth: %d", cfg.Parser.MaxDepth)
	}

	if cfg.Engine.WorkersCount == 0 {
		return nil, logger, fmt.Errorf("engine workers count cannot be zero")
	}

	if cfg.Watch.Debounce < 0 {
		return nil, logger, fmt.Errorf("invalid watch debounce: %s", cfg.Watch.Debounce)
	}

	var apiConfig api.Config
	if cfg.API != nil {
		if err := remarshal(cfg.API, &apiConfig); err != nil {
			return nil, logger, fmt.Errorf("cannot parse api config: %w", err)
		}
	}
	if apiConfig.Addr == "" {
		apiConfig.Addr = defaultAPIAddr
	}

	return &Runtime{
		Interp: interp.Options{
			MaxDepth: cfg.Parser.MaxDepth,
		},
		Engine: engine.Config{
			WorkersCount: cfg.Engine.WorkersCount,
			BufferSize:   cfg.Engine.BufferSize,
		},
		WatchDebounce: cfg.Watch.Debounce,
		API:           apiConfig,
	}, logger, nil
}

func parseLoggerConfig(cfg LoggerConfig) (*slog.Logger, error) {
	var handler slog.Handler

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	var w io.Writer
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	default:
		return nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}

	switch cfg.Type {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "colored-text":
		handler = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	default:
		return nil, fmt.Errorf("invalid log type: %s", cfg.Type)
	}

	return slog.New(handler), nil
}

// remarshal takes an input value, marshals it to YAML, and then unmarshals it into a new value of the same type.
// This is useful for converting generic interfaces (like map[string]any) into concrete struct types.
// The output parameter must be a pointer to the target type.
func remarshal(input any, output any) error {
	// Marshal the input to YAML
	yamlBytes, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}

	// Unmarshal the YAML into the output
	if err := yaml.Unmarshal(yamlBytes, output); err != nil {
		return fmt.Errorf("failed to unmarshal from YAML: %w", err)
	}

	return nil
}
