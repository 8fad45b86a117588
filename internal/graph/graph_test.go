package graph

import "testing"

func filterFixture(t *testing.T) *Graph {
	t.Helper()
	nodes := []Node{
		{ID: "page", Kind: KindPage, Tags: []string{"#t"}},
		{ID: "doc.pdf", Kind: KindPDF, Tags: []string{"#t"}},
		{ID: "lonely", Kind: KindPage},
		{ID: "#t", Kind: KindTag},
		{ID: "#unused", Kind: KindTag},
	}
	g, err := New(nodes, Rules{Tags: true, CoTags: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func ids(g *Graph) []string {
	out := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.ID
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	g := filterFixture(t)

	tests := []struct {
		name      string
		filter    Filter
		wantNodes []string
		wantLinks int
	}{
		{"show all", ShowAll(), []string{"page", "doc.pdf", "lonely", "#t", "#unused"}, 3},
		{"hide tags", Filter{ShowAttachments: true, ShowOrphans: true}, []string{"page", "doc.pdf", "lonely"}, 1},
		{"hide attachments", Filter{ShowTags: true, ShowOrphans: true}, []string{"page", "lonely", "#t", "#unused"}, 1},
		{"hide orphans", Filter{ShowTags: true, ShowAttachments: true}, []string{"page", "doc.pdf", "#t", "#unused"}, 3},
		{"hide everything optional", Filter{}, []string{"page"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := tt.filter.Apply(g)
			got := ids(sub)
			if len(got) != len(tt.wantNodes) {
				t.Fatalf("nodes = %v, want %v", got, tt.wantNodes)
			}
			for i := range got {
				if got[i] != tt.wantNodes[i] {
					t.Errorf("nodes = %v, want %v", got, tt.wantNodes)
					break
				}
			}
			if len(sub.Links) != tt.wantLinks {
				t.Errorf("links = %d, want %d", len(sub.Links), tt.wantLinks)
			}
			for _, l := range sub.Links {
				if !sub.Has(l.Source) || !sub.Has(l.Target) {
					t.Errorf("link %s -> %s escapes the subgraph", l.Source, l.Target)
				}
			}
		})
	}
}

func TestGraph_Neighborhood(t *testing.T) {
	g := filterFixture(t)
	nb := g.Neighborhood("doc.pdf")

	if !nb.Out["#t"] {
		t.Error("expected #t as outgoing neighbor")
	}
	if !nb.In["page"] {
		t.Error("expected page as incoming neighbor (co-tag link page -> doc.pdf)")
	}
	if nb.Contains("lonely") {
		t.Error("lonely should not be in the neighborhood")
	}
	if !nb.Contains("doc.pdf") {
		t.Error("center should be contained")
	}
}

func TestNode_IsTag(t *testing.T) {
	tests := []struct {
		node Node
		want bool
	}{
		{Node{ID: "#physics"}, true},
		{Node{ID: "physics", Kind: KindTag}, true},
		{Node{ID: "physics", Kind: KindPage}, false},
	}
	for _, tt := range tests {
		if got := tt.node.IsTag(); got != tt.want {
			t.Errorf("%+v.IsTag() = %v, want %v", tt.node, got, tt.want)
		}
	}
}

func TestGraph_Lookup(t *testing.T) {
	g := filterFixture(t)
	if n, ok := g.Node("page"); !ok || n.Kind != KindPage {
		t.Errorf("Node(page) = %+v, %v", n, ok)
	}
	if g.IndexOf("#t") != 3 || g.IndexOf("nope") != -1 {
		t.Error("IndexOf returned wrong positions")
	}
	if g.Degree("page") != 2 {
		t.Errorf("Degree(page) = %d, want 2", g.Degree("page"))
	}
}
