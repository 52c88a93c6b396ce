package cmd

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ziadkadry99/docpage/internal/config"
	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/highlight"
	"github.com/ziadkadry99/docpage/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docpage init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds a production logger, or a development one with --verbose.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(string(cfg.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("parsing log_level: %w", err)
		}
		if !verbose {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	return zc.Build()
}

// newLoader fetches documents over HTTP when an origin is configured and
// reads them from docs_dir otherwise.
func newLoader(cfg *config.Config) content.Loader {
	if cfg.Origin != "" {
		return content.NewHTTPLoader(http.DefaultClient, cfg.Origin, cfg.BasePath)
	}
	return content.NewDirLoader(os.DirFS(cfg.DocsDir))
}

func newLibrary(cfg *config.Config) *content.Library {
	return content.NewLibrary(os.DirFS(cfg.DocsDir), cfg.Include, cfg.Exclude)
}

func newPipeline(cfg *config.Config, logger *zap.Logger) *render.Pipeline {
	registry := highlight.NewRegistry(
		highlight.ChromaSource{Style: cfg.Highlight.Style},
		cfg.Highlight.ExtraGrammars...,
	)
	return render.New(newLoader(cfg), registry,
		render.WithLogger(logger),
		render.WithTOCMinimum(cfg.TOC.MinHeadings),
	)
}
