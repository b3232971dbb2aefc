package generator

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/internal/target"
	"github.com/cmmoran/wsdlphpgen/pkg/pattern"
)

// DefaultFileComment heads every generated file.
const DefaultFileComment = "This file is generated by wsdlphpgen. Changes will be overwritten."

// Options control generation.
//
// OutDir         – root directory; artifacts land in OutDir/<namespace path>.
// RootNamespace  – PHP namespace of the client library.
// TypesNamespace – sub-namespace holding generated types.
// PhpVersion     – target PHP version; 7.4 and later get native property types.
// TraitName      – name of the shared behavior trait.
// BaseTrait      – generate the trait and make every type class use it.
// ArrayAdders    – add an add<Item>() method per array property.
// PatternFile    – PHP file holding a custom pattern class (default: built-in).
// PatternClass   – class to reflect inside PatternFile.
// IndentWidth    – body indentation stripped beyond the method declaration.
// DetectIndent   – strip the first body line's indentation instead of IndentWidth.
// FileComment    – header comment of generated files.
type Options struct {
	OutDir         string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	RootNamespace  string `json:"root_namespace,omitempty" yaml:"root_namespace,omitempty" toml:"root_namespace,omitempty" mapstructure:"root_namespace,omitempty"`
	TypesNamespace string `json:"types_namespace,omitempty" yaml:"types_namespace,omitempty" toml:"types_namespace,omitempty" mapstructure:"types_namespace,omitempty"`
	PhpVersion     string `json:"php_version,omitempty" yaml:"php_version,omitempty" toml:"php_version,omitempty" mapstructure:"php_version,omitempty"`
	TraitName      string `json:"trait_name,omitempty" yaml:"trait_name,omitempty" toml:"trait_name,omitempty" mapstructure:"trait_name,omitempty"`
	BaseTrait      bool   `json:"base_trait,omitempty" yaml:"base_trait,omitempty" toml:"base_trait,omitempty" mapstructure:"base_trait,omitempty"`
	ArrayAdders    bool   `json:"array_adders,omitempty" yaml:"array_adders,omitempty" toml:"array_adders,omitempty" mapstructure:"array_adders,omitempty"`
	PatternFile    string `json:"pattern_file,omitempty" yaml:"pattern_file,omitempty" toml:"pattern_file,omitempty" mapstructure:"pattern_file,omitempty"`
	PatternClass   string `json:"pattern_class,omitempty" yaml:"pattern_class,omitempty" toml:"pattern_class,omitempty" mapstructure:"pattern_class,omitempty"`
	IndentWidth    int    `json:"indent_width,omitempty" yaml:"indent_width,omitempty" toml:"indent_width,omitempty" mapstructure:"indent_width,omitempty"`
	DetectIndent   bool   `json:"detect_indent,omitempty" yaml:"detect_indent,omitempty" toml:"detect_indent,omitempty" mapstructure:"detect_indent,omitempty"`
	FileComment    string `json:"file_comment,omitempty" yaml:"file_comment,omitempty" toml:"file_comment,omitempty" mapstructure:"file_comment,omitempty"`

	Fs     afero.Fs     `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
	Logger *slog.Logger `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
}

func NewOptions() *Options {
	return &Options{
		OutDir:         "generated",
		TypesNamespace: "Types",
		PhpVersion:     target.DefaultVersion,
		TraitName:      "BaseType",
		BaseTrait:      true,
		IndentWidth:    pattern.DefaultIndentWidth,
		FileComment:    DefaultFileComment,
	}
}

// Normalize fills defaults and validates the options.
func (o *Options) Normalize() error {
	if len(o.OutDir) == 0 {
		o.OutDir = "generated"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if o.PhpVersion == "" {
		o.PhpVersion = target.DefaultVersion
	}
	if o.TraitName == "" {
		o.TraitName = "BaseType"
	}
	if o.IndentWidth < 0 {
		return errors.InvalidConfig(errors.Newf("indent width %d", o.IndentWidth), "options")
	}
	if o.PatternFile != "" && o.PatternClass == "" {
		o.PatternClass = strings.TrimSuffix(filepath.Base(o.PatternFile), filepath.Ext(o.PatternFile))
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithOutDir(d string) Option          { return func(o *Options) { o.OutDir = d } }
func WithRootNamespace(ns string) Option  { return func(o *Options) { o.RootNamespace = ns } }
func WithTypesNamespace(ns string) Option { return func(o *Options) { o.TypesNamespace = ns } }
func WithPhpVersion(v string) Option      { return func(o *Options) { o.PhpVersion = v } }
func WithTraitName(n string) Option       { return func(o *Options) { o.TraitName = n } }
func WithoutBaseTrait() Option            { return func(o *Options) { o.BaseTrait = false } }
func WithArrayAdders() Option             { return func(o *Options) { o.ArrayAdders = true } }
func WithIndentWidth(w int) Option        { return func(o *Options) { o.IndentWidth = w } }
func WithDetectIndent() Option            { return func(o *Options) { o.DetectIndent = true } }
func WithFileComment(c string) Option     { return func(o *Options) { o.FileComment = c } }
func WithFs(fs afero.Fs) Option           { return func(o *Options) { o.Fs = fs } }
func WithLogger(l *slog.Logger) Option    { return func(o *Options) { o.Logger = l } }
func WithPattern(file, class string) Option {
	return func(o *Options) { o.PatternFile, o.PatternClass = file, class }
}
