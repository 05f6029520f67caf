package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrConfigExists is returned when a config file is already present and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// quoteYAMLValue quotes a string value for safe YAML serialization.
func quoteYAMLValue(value string) string {
	needsQuoting := strings.ContainsAny(value, ":{}[]&*#?|-<>=!%@`\"'\n\r\t ")
	if !needsQuoting {
		return value
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}

// DefaultConfigYAML renders a config file with every composer default spelled
// out, so the meter and limits can be edited in place.
func DefaultConfigYAML(dataDir string) string {
	var sb strings.Builder
	sb.WriteString("# tagespoet configuration\n")
	sb.WriteString("data:\n")
	sb.WriteString(fmt.Sprintf("  dir: %s\n", quoteYAMLValue(dataDir)))
	sb.WriteString("\ncomposer:\n")
	sb.WriteString("  # 1 = stressed, 0 = unstressed syllable; one entry per line\n")
	sb.WriteString("  meter:\n")
	for _, line := range DefaultMeter {
		sb.WriteString(fmt.Sprintf("    - \"%s\"\n", line))
	}
	sb.WriteString("  # lines sharing a group id must rhyme\n")
	sb.WriteString("  rhymeScheme: [")
	for i, g := range DefaultRhymeScheme {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%d", g))
	}
	sb.WriteString("]\n")
	sb.WriteString("  keywords:\n")
	sb.WriteString(fmt.Sprintf("    initial: %d\n", DefaultInitialKeywords))
	sb.WriteString(fmt.Sprintf("    step: %d\n", DefaultKeywordStep))
	sb.WriteString(fmt.Sprintf("    max: %d\n", DefaultMaxKeywords))
	sb.WriteString(fmt.Sprintf("  lineRetryFactor: %d\n", DefaultLineRetryFactor))
	sb.WriteString(fmt.Sprintf("  lineResetLimit: %d\n", DefaultLineResetLimit))
	sb.WriteString(fmt.Sprintf("  timeBudget: %s\n", DefaultTimeBudget))
	sb.WriteString(fmt.Sprintf("  maxPoemResets: %d\n", DefaultMaxPoemResets))
	sb.WriteString(fmt.Sprintf("  publishOffset: %s\n", DefaultPublishOffset))
	return sb.String()
}

// WriteDefaultConfig writes DefaultConfigYAML to path. An existing file is
// only replaced when force is set.
func WriteDefaultConfig(path, dataDir string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(DefaultConfigYAML(dataDir)), 0644)
}
