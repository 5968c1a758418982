// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/preset"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleConfig is a user supplied rewrite rule
type RuleConfig struct {
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind,omitempty" yaml:"kind,omitempty"` // literal, regex (default) or insert_after
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Literal     bool   `json:"literal,omitempty" yaml:"literal,omitempty"`
	File        string `json:"file,omitempty" yaml:"file,omitempty"` // optional doublestar glob
}

// 📚 Config represents the complete configuration
type Config struct {
	Target string       `json:"target,omitempty" yaml:"target,omitempty"`
	Preset string       `json:"preset,omitempty" yaml:"preset,omitempty"`
	Backup bool         `json:"backup,omitempty" yaml:"backup,omitempty"`
	Rules  []RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// 🏭 Default returns the configuration used when no config file is given
func Default() *Config {
	return &Config{
		Target: preset.StaffFormTarget,
		Preset: preset.ShadcnStaffForm,
	}
}

// 🎯 Load loads and validates the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration loaded")

	return cfg, nil
}

// 📖 Read parses a config file without validating it, so callers can apply
// overrides before defaults are filled in
func Read(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("reading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Preset == "" && len(cfg.Rules) == 0 {
		return errors.Errorf("preset or rules is required")
	}

	if cfg.Preset != "" {
		p, err := preset.Get(cfg.Preset)
		if err != nil {
			return errors.Errorf("preset: %w", err)
		}
		if cfg.Target == "" {
			cfg.Target = p.Target
		}
	}

	if cfg.Target == "" {
		return errors.Errorf("target is required")
	}
	cfg.Target = filepath.Clean(cfg.Target)

	for i := range cfg.Rules {
		r := &cfg.Rules[i]
		if r.Pattern == "" {
			return errors.Errorf("rules[%d].pattern is required", i)
		}
		if r.Kind == "" {
			r.Kind = string(text.KindRegex)
		}
		if !text.RuleKind(r.Kind).Valid() {
			return errors.Errorf("rules[%d].kind %q is not one of literal, regex, insert_after", i, r.Kind)
		}
	}

	return nil
}

// 🧩 ResolveRules returns the preset rules followed by the custom rules
func (cfg *Config) ResolveRules() ([]text.Rule, error) {
	var rules []text.Rule

	if cfg.Preset != "" {
		p, err := preset.Get(cfg.Preset)
		if err != nil {
			return nil, errors.Errorf("resolving preset: %w", err)
		}
		rules = append(rules, p.Rules...)
	}

	for _, r := range cfg.Rules {
		rules = append(rules, text.Rule{
			Name:           r.Name,
			Kind:           text.RuleKind(r.Kind),
			Pattern:        r.Pattern,
			Replacement:    r.Replacement,
			Literal:        r.Literal,
			FileFilterGlob: r.File,
		})
	}

	if err := text.NewRegexRewriter().ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	return rules, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	name := cfg.Preset
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s+%d -> %s", name, len(cfg.Rules), cfg.Target)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
