// Package graph defines the serialization format for computed tree layouts.
//
// This is the data contract between the layout engine and the rendering
// surface: two flat arrays (nodes and edges) that a pan/zoom graph canvas
// can draw without knowing anything about genealogy. The format is also
// what gets cached, written to disk by the CLI, and returned by the HTTP
// API, so it carries both json and bson tags.
package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arborgraph/arbor/pkg/family"
)

// Edge kinds.
const (
	KindParentChild = "parent-child"
	KindSpouse      = "spouse"
)

// Density settings for spacing constants.
const (
	DensityComfortable = "comfortable"
	DensityCompact     = "compact"
)

// Layout is the canonical serialization format for a computed tree layout.
//
// Node positions are top-left coordinates in canvas units. FitView tells
// the host to animate the camera onto the fresh layout exactly once; it is
// always true on a newly computed layout and carries no meaning after the
// host consumes it.
type Layout struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`

	ViewportWidth float64 `json:"viewport_width" bson:"viewport_width"`
	Density       string  `json:"density,omitempty" bson:"density,omitempty"`
	FitView       bool    `json:"fit_view" bson:"fit_view"`
}

// Node is one drawable member card. Generation and FamilyGroup are
// consumed by the rendering surface for highlighting related cards, not by
// the layout engine itself.
type Node struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`

	Member      family.Member `json:"member" bson:"member"`
	Generation  int           `json:"generation" bson:"generation"`
	FamilyGroup string        `json:"family_group,omitempty" bson:"family_group,omitempty"`
}

// Edge is a drawable relationship line. For KindParentChild the Source is
// the parent; for KindSpouse exactly one edge exists per couple.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Kind   string `json:"kind" bson:"kind"`
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// ReadMembersFile reads a flat member list from a JSON file. This is the
// input side of the CLI contract: the same array the site's REST API
// returns, saved to disk.
func ReadMembersFile(path string) ([]family.Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var members []family.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("unmarshal members: %w", err)
	}
	return members, nil
}
