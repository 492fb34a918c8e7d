// Package outline recovers the numbered section outline ("1", "1.1",
// "1.1.1", ...) of a technical document rendered to HTML by an office
// converter, and renders it as plain text, Markdown, JSON or YAML.
//
// The pipeline has four stages: a Sanitizer strips tables, images and
// rendering-only nodes plus caption and prose paragraphs, a Matcher turns
// the surviving blocks into heading candidates, Accumulate deduplicates and
// bounds them by depth, and a Renderer serializes the entries.
package outline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config defines every tunable of the extraction pipeline.
type Config struct {
	// MaxLevel is the deepest heading level kept in the outline.
	MaxLevel int `json:"max_level" yaml:"max_level" validate:"oneof=1 2 3"`

	// MaxBlockRunes is the longest paragraph (in runes, after trimming)
	// the sanitizer keeps. Longer blocks are treated as body prose.
	MaxBlockRunes int `json:"max_block_runes" yaml:"max_block_runes" validate:"min=1"`

	// CaptionLabels are the label words that mark a figure or table
	// caption when followed by a numeral, e.g. "图1.1" or "Table 2".
	CaptionLabels []string `json:"caption_labels" yaml:"caption_labels" validate:"dive,required"`

	// MinTitleRunes is the shortest heading title accepted.
	MinTitleRunes int `json:"min_title_runes" yaml:"min_title_runes" validate:"min=0"`

	// NormalizeWidth applies NFKC to block text before classification,
	// so full-width numerals and dots ("１．２") match the grammar.
	NormalizeWidth bool `json:"normalize_width" yaml:"normalize_width"`

	// MarkdownTitle is the document title line of the Markdown rendering.
	MarkdownTitle string `json:"markdown_title" yaml:"markdown_title" validate:"required"`

	// MaxInputBytes bounds the size of a single input document.
	// Zero means unlimited.
	MaxInputBytes int64 `json:"max_input_bytes" yaml:"max_input_bytes" validate:"min=0"`
}

// DefaultConfig returns the configuration used by the CLI when nothing
// else is set.
func DefaultConfig() *Config {
	return &Config{
		MaxLevel:      2,
		MaxBlockRunes: 200,
		CaptionLabels: []string{"图", "表", "Fig", "Table"},
		MinTitleRunes: 2,
		MarkdownTitle: "Document Outline",
		MaxInputBytes: 50 * humanize.MByte,
	}
}

// PresetDeep extracts down to level 3 and recognises full-width numerals.
func PresetDeep() *Config {
	cfg := DefaultConfig()
	cfg.MaxLevel = 3
	cfg.NormalizeWidth = true
	return cfg
}

// Preset returns a named preset, or false if the name is unknown.
func Preset(name string) (*Config, bool) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultConfig(), true
	case "deep":
		return PresetDeep(), true
	}
	return nil, false
}

// Merge merges another config into this one.
// Non-zero values from other override this config; caption labels are
// appended without duplicates.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	merged.CaptionLabels = append([]string(nil), c.CaptionLabels...)
	if other == nil {
		return &merged
	}

	if other.MaxLevel > 0 {
		merged.MaxLevel = other.MaxLevel
	}
	if other.MaxBlockRunes > 0 {
		merged.MaxBlockRunes = other.MaxBlockRunes
	}
	if other.MinTitleRunes > 0 {
		merged.MinTitleRunes = other.MinTitleRunes
	}
	if other.NormalizeWidth {
		merged.NormalizeWidth = true
	}
	if other.MarkdownTitle != "" {
		merged.MarkdownTitle = other.MarkdownTitle
	}
	if other.MaxInputBytes > 0 {
		merged.MaxInputBytes = other.MaxInputBytes
	}

	if len(other.CaptionLabels) > 0 {
		seen := make(map[string]bool)
		for _, l := range merged.CaptionLabels {
			seen[l] = true
		}
		for _, l := range other.CaptionLabels {
			if !seen[l] {
				merged.CaptionLabels = append(merged.CaptionLabels, l)
				seen[l] = true
			}
		}
	}

	return &merged
}

// Validate checks the config against its validation tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a config from a JSON or YAML file and merges it over
// DefaultConfig. The result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	cfg := DefaultConfig().Merge(&fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
