// Package pipeline provides the build → layout → render pipeline for bstviz.
//
// This package implements the whole path from user input to image that the
// CLI and the HTTP API share. By centralizing this logic, both entry points
// parse, lay out, render and cache the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Parse the input for a category and insert the values in order
//  2. Layout: Assign every node its coordinates inside the drawing bounds
//  3. Render: Generate output in the requested formats (SVG, PNG, JSON, YAML, DOT)
//
// Rendered artifacts are cached by a hash of the tree and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Category: "integer",
//	    Input:    "50, 30, 70, 20, 40",
//	    Formats:  []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCategory is the value category used when none is given.
	DefaultCategory = "integer"

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultRadius is the default node radius in pixels.
	DefaultRadius = layout.DefaultRadius

	// DefaultStyle is the default visual style.
	DefaultStyle = graph.StyleSimple
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatYAML, FormatDOT}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Category string   `json:"category"`
	Input    string   `json:"input,omitempty"`  // comma-separated values
	Values   []string `json:"values,omitempty"` // used instead of Input when set
	Random   bool     `json:"random,omitempty"` // ignore Input and generate values
	Seed     uint64   `json:"seed,omitempty"`   // for Random; 0 picks one

	// Layout options
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Gap     float64 `json:"gap,omitempty"`
	MarginX float64 `json:"margin_x,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Order     string   `json:"order,omitempty"` // number nodes by this traversal
	Highlight []string `json:"highlight,omitempty"`
	Crop      bool     `json:"crop,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"` // bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	category  bst.Category
	order     *bst.Order
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the built and laid-out tree.
	Tree *bst.Tree

	// Values are the accepted values in insertion order.
	Values []bst.Value

	// Dropped counts input tokens rejected as invalid or repeated.
	Dropped int

	// TreeHash identifies the tree for cache keys and API responses.
	TreeHash string

	// Layout is the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Depth      int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json, yaml, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !graph.ValidStyle(style) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, outlined, graphviz)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the category and input.
func (o *Options) ValidateForBuild() error {
	if o.Category == "" {
		o.Category = DefaultCategory
	}
	c, err := bst.ParseCategory(o.Category)
	if err != nil {
		return err
	}
	o.category = c

	if !o.Random {
		if len(o.Values) > errors.MaxValues {
			return errors.New(errors.ErrCodeInvalidInput, "too many values (max %d)", errors.MaxValues)
		}
		if len(o.Values) == 0 {
			if err := errors.ValidateInput(o.Input); err != nil {
				return err
			}
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForLayout applies layout defaults and checks the dimensions.
func (o *Options) ValidateForLayout() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Gap < 0 || o.MarginX < 0 {
		return errors.New(errors.ErrCodeInvalidDimension, "gap and margin must not be negative")
	}
	return errors.ValidateDimensions(o.Width, o.Height, o.Radius)
}

// ValidateForRender applies render defaults and checks formats, style and
// traversal order.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Order != "" {
		ord, err := bst.ParseOrder(o.Order)
		if err != nil {
			return err
		}
		o.order = &ord
		o.Order = ord.String()
	}
	return nil
}

// Bounds returns the layout rectangle the options describe.
func (o *Options) Bounds() layout.Bounds {
	b := layout.DefaultBounds(o.Width, o.Height, o.Radius)
	if o.Gap > 0 {
		b.Gap = o.Gap
	}
	if o.MarginX > 0 {
		b.MarginX = o.MarginX
	}
	return b
}

// IsGraphviz reports whether images are drawn by Graphviz instead of the
// built-in SVG renderer.
func (o *Options) IsGraphviz() bool {
	return o.Style == graph.StyleGraphviz
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Width:     o.Width,
		Height:    o.Height,
		Radius:    o.Radius,
		Gap:       o.Gap,
		Margin:    o.MarginX,
		Order:     o.Order,
		Crop:      o.Crop,
		Highlight: o.Highlight,
	}
}
