package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// docsDirCandidates are directory names checked, in order, for existing
// Markdown documentation.
var docsDirCandidates = []string{"docs", "doc", "documentation", "content"}

// styleChoices are the highlighting styles offered by the wizard.
var styleChoices = []string{"github", "monokai", "dracula", "nord", "solarized-light", "solarized-dark"}

// detectDocsDir returns the first candidate directory that exists.
func detectDocsDir() string {
	for _, dir := range docsDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docpage.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docpage! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Documents directory.
	docsPrompt := promptui.Prompt{
		Label:   "Directory containing Markdown documents",
		Default: detectDocsDir(),
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}
	cfg.DocsDir = docsDir

	// 2. Base path.
	basePrompt := promptui.Prompt{
		Label:   "Base path the site is served under (blank for /)",
		Default: "",
	}
	cfg.BasePath, err = basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base path: %w", err)
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. Highlighting style.
	stylePrompt := promptui.Select{
		Label: "Select highlighting style",
		Items: styleChoices,
	}
	_, cfg.Highlight.Style, err = stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("style selection: %w", err)
	}

	// 5. Extra grammars.
	grammarPrompt := promptui.Prompt{
		Label:   "Extra languages to highlight (comma-separated, e.g. go,python)",
		Default: "",
	}
	grammars, err := grammarPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("extra grammars: %w", err)
	}
	cfg.Highlight.ExtraGrammars = splitAndTrim(grammars)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
