package highlight

import "strings"

// DefaultLanguage is used for code blocks that declare no language.
const DefaultLanguage = "javascript"

// aliases maps informal language tags to canonical grammar names.
// No canonical name may appear as a key.
var aliases = map[string]string{
	"js":      "javascript",
	"node":    "javascript",
	"mjs":     "javascript",
	"cjs":     "javascript",
	"ts":      "typescript",
	"html":    "markup",
	"xml":     "markup",
	"xhtml":   "markup",
	"svg":     "markup",
	"sh":      "bash",
	"shell":   "bash",
	"zsh":     "bash",
	"console": "bash",
	"yml":     "yaml",
	"jsonc":   "json",
}

// Normalize returns the canonical grammar name for a raw language tag.
// Tags without an alias pass through so that extra grammars can still match.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return DefaultLanguage
	}
	if canonical, ok := aliases[tag]; ok {
		return canonical
	}
	return tag
}
