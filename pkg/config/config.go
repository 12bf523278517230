// Copyright 2025 sentgine
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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for plan parsers
type Parser interface {
	// 📝 Parse parses the plan from bytes
	Parse(ctx context.Context, data []byte) (*Plan, error)

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

// 📄 FileEntry describes a single file to produce
type FileEntry struct {
	Destination       string            `json:"destination" yaml:"destination" hcl:"destination"`
	Source            string            `json:"source,omitempty" yaml:"source,omitempty" hcl:"source,optional"`
	Content           *string           `json:"content,omitempty" yaml:"content,omitempty" hcl:"content,optional"`
	Overwrite         bool              `json:"overwrite,omitempty" yaml:"overwrite,omitempty" hcl:"overwrite,optional"`
	Replacements      map[string]string `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replacements,optional"`
	PlaceholderFormat string            `json:"placeholder_format,omitempty" yaml:"placeholder_format,omitempty" hcl:"placeholder_format,optional"`
}

// 🌲 TreeEntry describes a directory tree to copy
type TreeEntry struct {
	Source            string            `json:"source" yaml:"source" hcl:"source"`
	Destination       string            `json:"destination" yaml:"destination" hcl:"destination"`
	IgnorePatterns    []string          `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	Replacements      map[string]string `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replacements,optional"`
	PlaceholderFormat string            `json:"placeholder_format,omitempty" yaml:"placeholder_format,omitempty" hcl:"placeholder_format,optional"`
}

// 📚 Plan represents a complete batch of filesystem operations
type Plan struct {
	Source      string      `json:"source,omitempty" yaml:"source,omitempty" hcl:"source,optional"`
	Destination string      `json:"destination,omitempty" yaml:"destination,omitempty" hcl:"destination,optional"`
	Directories []string    `json:"directories,omitempty" yaml:"directories,omitempty" hcl:"directories,optional"`
	Files       []FileEntry `json:"files,omitempty" yaml:"files,omitempty" hcl:"file,block"`
	Trees       []TreeEntry `json:"trees,omitempty" yaml:"trees,omitempty" hcl:"tree,block"`
	Removals    []string    `json:"removals,omitempty" yaml:"removals,omitempty" hcl:"removals,optional"`
	Async       bool        `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
}

// 🎯 Load loads a plan from a file
func Load(ctx context.Context, path string) (*Plan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading plan")

	// Read plan file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse plan
	plan, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing plan: %w", err)
	}

	return plan, nil
}

// 🔍 Validate checks if the plan is valid
func (p *Plan) Validate() error {
	if p.Destination != "" {
		p.Destination = filepath.Clean(p.Destination)
	}
	if p.Source != "" {
		p.Source = filepath.Clean(p.Source)
	}

	for i := range p.Directories {
		if p.Directories[i] == "" {
			return errors.Errorf("directories[%d]: path is required", i)
		}
	}

	for i, f := range p.Files {
		if f.Destination == "" {
			return errors.Errorf("file[%d]: destination is required", i)
		}
		if f.Source != "" && f.Content != nil {
			return errors.Errorf("file[%d]: source and content are mutually exclusive", i)
		}
		if f.Source == "" && f.Content == nil {
			return errors.Errorf("file[%d]: one of source or content is required", i)
		}
	}

	for i, tr := range p.Trees {
		if tr.Source == "" {
			return errors.Errorf("tree[%d]: source is required", i)
		}
		if tr.Destination == "" {
			return errors.Errorf("tree[%d]: destination is required", i)
		}
	}

	for i := range p.Removals {
		if p.Removals[i] == "" {
			return errors.Errorf("removals[%d]: path is required", i)
		}
	}

	return nil
}

// 📝 String returns a string representation of the plan
func (p *Plan) String() string {
	return fmt.Sprintf("%d dirs, %d files, %d trees, %d removals -> %s",
		len(p.Directories), len(p.Files), len(p.Trees), len(p.Removals), p.Destination)
}

// 🔢 EntryCount returns the total number of plan entries
func (p *Plan) EntryCount() int {
	return len(p.Directories) + len(p.Files) + len(p.Trees) + len(p.Removals)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Plan, error) {
	var plan Plan
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	return &plan, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Plan, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "plan.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var plan Plan
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &plan)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := plan.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	return &plan, nil
}
