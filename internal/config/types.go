package config

import "time"

// LogLevel is the minimum level that gets logged.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level docpage configuration, corresponding to .docpage.yml.
type Config struct {
	BasePath  string          `yaml:"base_path" koanf:"base_path"`
	DocsDir   string          `yaml:"docs_dir" koanf:"docs_dir"`
	Origin    string          `yaml:"origin" koanf:"origin"`
	OutputDir string          `yaml:"output_dir" koanf:"output_dir"`
	Port      int             `yaml:"port" koanf:"port"`
	LogLevel  LogLevel        `yaml:"log_level" koanf:"log_level"`
	Include   []string        `yaml:"include" koanf:"include"`
	Exclude   []string        `yaml:"exclude" koanf:"exclude"`
	Highlight HighlightConfig `yaml:"highlight" koanf:"highlight"`
	TOC       TOCConfig       `yaml:"toc" koanf:"toc"`
	Interact  InteractConfig  `yaml:"interact" koanf:"interact"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
}

// HighlightConfig selects the highlighting style and grammars loaded beyond
// the built-in manifest.
type HighlightConfig struct {
	Style         string   `yaml:"style" koanf:"style"`
	ExtraGrammars []string `yaml:"extra_grammars" koanf:"extra_grammars"`
}

// TOCConfig holds table-of-contents settings.
type TOCConfig struct {
	MinHeadings int `yaml:"min_headings" koanf:"min_headings"`
}

// InteractConfig holds page interaction timings.
type InteractConfig struct {
	CopyReset     time.Duration `yaml:"copy_reset" koanf:"copy_reset"`
	DeepLinkDelay time.Duration `yaml:"deep_link_delay" koanf:"deep_link_delay"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
