package config

import "time"

// FileName is the configuration file looked up in the working directory.
const FileName = ".docpage.yml"

// DefaultExcludes are glob patterns excluded from the document library by
// default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"**/_*.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DocsDir:   "docs",
		OutputDir: "site",
		Port:      8080,
		LogLevel:  LogInfo,
		Include:   []string{"**/*.md"},
		Exclude:   append([]string(nil), DefaultExcludes...),
		Highlight: HighlightConfig{
			Style: "github",
		},
		TOC: TOCConfig{
			MinHeadings: 3,
		},
		Interact: InteractConfig{
			CopyReset:     2 * time.Second,
			DeepLinkDelay: 100 * time.Millisecond,
		},
	}
}
