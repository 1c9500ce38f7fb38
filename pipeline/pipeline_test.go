package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/movietrack/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func([]*core.Item) ([]*core.Item, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }
func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items)
}

func movieItems(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(&core.Movie{ID: id}))
	}
	return out
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "recall", kind: KindRecall, fn: func([]*core.Item) ([]*core.Item, error) {
			return movieItems("a", "b", "c"), nil
		}},
		&stubNode{name: "drop-first", kind: KindFilter, fn: func(items []*core.Item) ([]*core.Item, error) {
			return items[1:], nil
		}},
	}}

	got, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "B" || got[1].ID != "C" {
		t.Errorf("Run() = %v", core.Movies(got))
	}
}

func TestPipelineRunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "fail", kind: KindRank, fn: func([]*core.Item) ([]*core.Item, error) { return nil, boom }},
		&stubNode{name: "after", kind: KindReRank, fn: func(items []*core.Item) ([]*core.Item, error) {
			called = true
			return items, nil
		}},
	}}

	_, err := p.Run(context.Background(), &core.RecommendContext{}, movieItems("a"))
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want wrapped boom", err)
	}
	if called {
		t.Error("node after failure should not run")
	}
}

func TestNodesOf(t *testing.T) {
	identity := func(items []*core.Item) ([]*core.Item, error) { return items, nil }
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "f1", kind: KindFilter, fn: identity},
		&stubNode{name: "r1", kind: KindReRank, fn: identity},
		&stubNode{name: "f2", kind: KindFilter, fn: identity},
	}}

	filters := p.NodesOf(KindFilter)
	if len(filters) != 2 || filters[0].Name() != "f1" || filters[1].Name() != "f2" {
		t.Errorf("NodesOf(filter) = %v", filters)
	}
	if got := (*Pipeline)(nil).NodesOf(KindFilter); got != nil {
		t.Errorf("nil pipeline NodesOf() = %v", got)
	}
}

func TestConfigBuildPipeline(t *testing.T) {
	yamlDoc := []byte(`
pipeline:
  name: extras
  nodes:
    - type: stub.filter
      config:
        keep: 1
`)
	cfg, err := ParseYAML(yamlDoc)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "extras" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("ParseYAML() = %+v", cfg)
	}

	factory := NewNodeFactory()
	factory.Register("stub.filter", func(c map[string]interface{}) (Node, error) {
		if c["keep"] != 1 {
			return nil, errors.New("missing keep")
		}
		return &stubNode{name: "stub", kind: KindFilter, fn: func(items []*core.Item) ([]*core.Item, error) {
			return items[:1], nil
		}}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 1 || p.Nodes[0].Name() != "stub" {
		t.Errorf("BuildPipeline() nodes = %v", p.Nodes)
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, NodeConfig{Type: "unknown"})
	if _, err := cfg.BuildPipeline(factory); err == nil {
		t.Error("BuildPipeline() expected error for unknown node type")
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "pipeline.yaml")
	jsonPath := filepath.Join(dir, "pipeline.json")
	if err := os.WriteFile(yamlPath, []byte("pipeline:\n  name: y\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, []byte(`{"pipeline":{"name":"j","nodes":[{"type":"rerank.diversity"}]}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	y, err := LoadFromYAML(yamlPath)
	if err != nil || y.Pipeline.Name != "y" {
		t.Errorf("LoadFromYAML() = %+v, %v", y, err)
	}
	j, err := LoadFromJSON(jsonPath)
	if err != nil || j.Pipeline.Name != "j" || j.Pipeline.Nodes[0].Type != "rerank.diversity" {
		t.Errorf("LoadFromJSON() = %+v, %v", j, err)
	}
	if _, err := LoadFromYAML(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFromYAML() expected error for missing file")
	}
}
