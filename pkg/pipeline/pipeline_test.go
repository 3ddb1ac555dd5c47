package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/graph"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateDensity(t *testing.T) {
	tests := []struct {
		density string
		wantErr bool
	}{
		{"comfortable", false},
		{"compact", false},
		{"", false}, // auto-select
		{"cozy", true},
		{"Compact", true},
	}

	for _, tt := range tests {
		err := ValidateDensity(tt.density)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDensity(%q) error = %v, wantErr %v", tt.density, err, tt.wantErr)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.ViewportWidth != DefaultViewportWidth {
		t.Errorf("ViewportWidth should be %v, got %v", DefaultViewportWidth, opts.ViewportWidth)
	}
	if opts.Density != graph.DensityComfortable {
		t.Errorf("Density should default to comfortable at %v, got %q", opts.ViewportWidth, opts.Density)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetLayoutDefaultsNarrowViewport(t *testing.T) {
	opts := Options{ViewportWidth: 400}
	opts.SetLayoutDefaults()

	if opts.Density != graph.DensityCompact {
		t.Errorf("narrow viewport should select compact, got %q", opts.Density)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{ViewportWidth: 600}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalDensity := opts.Density
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Density != originalDensity {
		t.Error("Density changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestValidateForLayoutRejectsBadOptions(t *testing.T) {
	opts := Options{Density: "cozy"}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("Invalid density should fail")
	}

	opts = Options{ViewportWidth: -100}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("Negative viewport width should fail")
	}
}

// =============================================================================
// Runner
// =============================================================================

// memCache is a minimal in-memory Cache for exercising the runner.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// stubSource serves a fixed member list and counts fetches.
type stubSource struct {
	members []family.Member
	fetches int
}

func (s *stubSource) Fetch(context.Context) ([]family.Member, error) {
	s.fetches++
	return s.members, nil
}

func (s *stubSource) Description() string { return "stub:family" }

func testMembers() []family.Member {
	return []family.Member{
		{ID: "karl", FirstName: "Karl", SpouseID: "maria"},
		{ID: "maria", FirstName: "Maria", SpouseID: "karl"},
		{ID: "elsa", FirstName: "Elsa", FatherID: "karl", MotherID: "maria"},
	}
}

func TestRunnerExecute(t *testing.T) {
	src := &stubSource{members: testMembers()}
	runner := NewRunner(newMemCache(), nil, nil)
	opts := Options{Formats: []string{"json", "dot"}}

	result, err := runner.Execute(context.Background(), src, opts)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Stats.MemberCount != 3 {
		t.Errorf("expected 3 members, got %d", result.Stats.MemberCount)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("expected 3 nodes, got %d", result.Stats.NodeCount)
	}
	if result.MembersHash == "" {
		t.Error("MembersHash should be set")
	}
	if result.LayoutID == "" {
		t.Error("LayoutID should be set")
	}
	if len(result.Artifacts["json"]) == 0 {
		t.Error("json artifact missing")
	}
	if !strings.Contains(string(result.Artifacts["dot"]), "digraph family") {
		t.Error("dot artifact missing graph header")
	}
	if result.CacheInfo.FetchHit || result.CacheInfo.LayoutHit {
		t.Error("first run should not hit the cache")
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	src := &stubSource{members: testMembers()}
	runner := NewRunner(newMemCache(), nil, nil)
	opts := Options{Formats: []string{"json"}}

	first, err := runner.Execute(context.Background(), src, opts)
	if err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	second, err := runner.Execute(context.Background(), src, Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}

	if !second.CacheInfo.FetchHit {
		t.Error("second run should hit the member cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if src.fetches != 1 {
		t.Errorf("source should be fetched once, got %d", src.fetches)
	}
	if first.LayoutID == second.LayoutID {
		t.Error("each run should get its own layout id")
	}
	if string(first.Artifacts["json"]) != string(second.Artifacts["json"]) {
		t.Error("cached layout should serialize identically")
	}
}

func TestRunnerFetchRefresh(t *testing.T) {
	src := &stubSource{members: testMembers()}
	runner := NewRunner(newMemCache(), nil, nil)

	if _, err := runner.Fetch(context.Background(), src, Options{}); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if _, err := runner.Fetch(context.Background(), src, Options{Refresh: true}); err != nil {
		t.Fatalf("refresh fetch failed: %v", err)
	}

	if src.fetches != 2 {
		t.Errorf("refresh should bypass the cache, got %d fetches", src.fetches)
	}
}

func TestRenderLayoutFormats(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	l, err := runner.ComputeLayout(context.Background(), testMembers(), Options{})
	if err != nil {
		t.Fatalf("ComputeLayout failed: %v", err)
	}

	artifacts, err := RenderLayout(l, Options{Formats: []string{"json", "dot"}})
	if err != nil {
		t.Fatalf("RenderLayout failed: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}

	if _, err := RenderLayout(l, Options{Formats: []string{"gif"}}); err == nil {
		t.Error("unsupported format should fail")
	}
}
