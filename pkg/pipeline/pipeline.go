// Package pipeline provides the core layout pipeline for Arbor.
//
// This package implements the complete fetch → layout → render pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Read family members from a source (file, REST API, MongoDB)
//  2. Layout: Compute canvas positions for the family tree
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ViewportWidth: 1280,
//	    Formats:       []string{"json"},
//	}
//	result, err := runner.Execute(ctx, source.NewFileSource("family.json"), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Fetch only
//	members, err := runner.Fetch(ctx, src, opts)
//
//	// Layout with existing members
//	layout, err := runner.ComputeLayout(ctx, members, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arborgraph/arbor/pkg/cache"
	"github.com/arborgraph/arbor/pkg/errors"
	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/graph"
	"github.com/arborgraph/arbor/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Serve Mode
// =============================================================================

// DefaultViewportWidth is the default viewport width in canvas units.
// It matches the layout engine's own default so uncached and cached runs
// agree on their cache keys.
const DefaultViewportWidth = layout.DefaultViewportWidth

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidDensities is the set of supported spacing densities.
var ValidDensities = map[string]bool{
	graph.DensityComfortable: true,
	graph.DensityCompact:     true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Refresh bool `json:"refresh,omitempty"` // Bypass the member-list cache

	// Layout options
	ViewportWidth float64 `json:"viewport_width,omitempty"`
	Density       string  `json:"density,omitempty"` // Empty selects by viewport width

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Include birth place and generation in DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Members is the fetched member list.
	Members []family.Member

	// MembersHash is the content hash of the member list.
	MembersHash string

	// LayoutID identifies this layout pass. The serve mode returns it so
	// clients can correlate responses with fit-view animations.
	LayoutID string

	// Layout contains the computed positions.
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
	MemberCount int
	NodeCount   int
	EdgeCount   int
	FetchTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the member list came from cache
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
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

// ValidateDensity checks that a density is valid. The empty string is
// allowed and means "select by viewport width".
func ValidateDensity(density string) error {
	if density != "" && !ValidDensities[density] {
		return errors.New(errors.ErrCodeInvalidDensity,
			"invalid density: %q (must be one of: comfortable, compact)", density)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation. The density
// is resolved here rather than left to the layout engine so that cache keys
// are canonical: an explicit "comfortable" and an auto-selected one key the
// same layout.
func (o *Options) SetLayoutDefaults() {
	if o.ViewportWidth == 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.Density == "" {
		if o.ViewportWidth < layout.CompactBreakpoint {
			o.Density = graph.DensityCompact
		} else {
			o.Density = graph.DensityComfortable
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := ValidateDensity(o.Density); err != nil {
		return err
	}
	if o.ViewportWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"viewport width must be positive, got %v", o.ViewportWidth)
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ViewportWidth: o.ViewportWidth,
		Density:       o.Density,
	}
}

// LayoutConfig returns the layout engine configuration for these options.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		ViewportWidth: o.ViewportWidth,
		Density:       o.Density,
	}
}
