package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/pipeline"
)

type stubSource struct {
	members []family.Member
}

func (s *stubSource) Fetch(context.Context) ([]family.Member, error) {
	return s.members, nil
}

func (s *stubSource) Description() string { return "stub:test" }

func testServer(t *testing.T, members []family.Member) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := New(runner, &stubSource{members: members}, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func sampleMembers() []family.Member {
	return []family.Member{
		{ID: "karl", FirstName: "Karl", SpouseID: "maria"},
		{ID: "maria", FirstName: "Maria", SpouseID: "karl"},
		{ID: "elsa", FirstName: "Elsa", FatherID: "karl", MotherID: "maria"},
	}
}

func TestHealth(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestGetLayout(t *testing.T) {
	ts := testServer(t, sampleMembers())

	resp, err := http.Get(ts.URL + "/api/v1/layout?viewport=1280")
	if err != nil {
		t.Fatalf("layout request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		LayoutID string `json:"layout_id"`
		Layout   struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
			FitView bool `json:"fit_view"`
		} `json:"layout"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode layout response: %v", err)
	}
	if body.LayoutID == "" {
		t.Error("layout_id missing")
	}
	if len(body.Layout.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(body.Layout.Nodes))
	}
	if !body.Layout.FitView {
		t.Error("fresh layout should request fit view")
	}
}

func TestGetLayoutBadDensity(t *testing.T) {
	ts := testServer(t, sampleMembers())

	resp, err := http.Get(ts.URL + "/api/v1/layout?density=cozy")
	if err != nil {
		t.Fatalf("layout request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetLayoutBadViewport(t *testing.T) {
	ts := testServer(t, sampleMembers())

	resp, err := http.Get(ts.URL + "/api/v1/layout?viewport=wide")
	if err != nil {
		t.Fatalf("layout request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPostLayoutInlineMembers(t *testing.T) {
	ts := testServer(t, nil)

	payload, _ := json.Marshal(map[string]any{
		"members":        sampleMembers(),
		"viewport_width": 1024,
	})
	resp, err := http.Post(ts.URL+"/api/v1/layout", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post layout failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Layout struct {
			ViewportWidth float64 `json:"viewport_width"`
		} `json:"layout"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Layout.ViewportWidth != 1024 {
		t.Errorf("expected viewport 1024, got %v", body.Layout.ViewportWidth)
	}
}

func TestPostLayoutBadBody(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/v1/layout", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatalf("post layout failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetMembers(t *testing.T) {
	ts := testServer(t, sampleMembers())

	resp, err := http.Get(ts.URL + "/api/v1/members")
	if err != nil {
		t.Fatalf("members request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var members []family.Member
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 3 {
		t.Errorf("expected 3 members, got %d", len(members))
	}
}
