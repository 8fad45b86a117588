package graph

import (
	"errors"
	"reflect"
	"testing"
)

func scenarioNodes() []Node {
	return []Node{
		{ID: "A", Kind: KindPage, Tags: []string{"#x"}},
		{ID: "B", Kind: KindPage, Tags: []string{"#x"}},
		{ID: "#x", Kind: KindTag},
	}
}

func TestDerive_Scenario(t *testing.T) {
	g, err := New(scenarioNodes(), Rules{Tags: true, CoTags: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []Link{
		{Source: "A", Target: "#x", Type: LinkTag, Value: 1},
		{Source: "B", Target: "#x", Type: LinkTag, Value: 1},
		{Source: "A", Target: "B", Type: LinkCoTag, Value: 1, SharedTags: []string{"#x"}},
	}
	if !reflect.DeepEqual(g.Links, want) {
		t.Errorf("Links = %+v, want %+v", g.Links, want)
	}
}

func TestDerive_TagCoverage(t *testing.T) {
	nodes := []Node{
		{ID: "p1", Kind: KindPage, Tags: []string{"#a", "#b", "#c"}},
		{ID: "p2", Kind: KindPDF, Tags: []string{"#b"}},
		{ID: "#a", Kind: KindTag},
		{ID: "#b", Kind: KindTag},
		{ID: "#c", Kind: KindTag},
	}
	links, err := Derive(nodes, Rules{Tags: true})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	counts := map[[2]string]int{}
	for _, l := range links {
		if l.Type != LinkTag {
			t.Fatalf("unexpected link type %s", l.Type)
		}
		counts[[2]string{l.Source, l.Target}]++
	}
	for _, n := range nodes {
		for _, tag := range n.Tags {
			if got := counts[[2]string{n.ID, tag}]; got != 1 {
				t.Errorf("(%s, %s) has %d tag links, want 1", n.ID, tag, got)
			}
		}
	}
	if len(links) != 4 {
		t.Errorf("got %d links, want 4", len(links))
	}
}

func TestDerive_CoTagWeight(t *testing.T) {
	tests := []struct {
		name      string
		a, b      []string
		wantLink  bool
		wantValue int
	}{
		{"disjoint", []string{"#a"}, []string{"#b"}, false, 0},
		{"one shared", []string{"#a", "#b"}, []string{"#b", "#c"}, true, 1},
		{"two shared", []string{"#a", "#b", "#c"}, []string{"#c", "#a"}, true, 2},
		{"identical", []string{"#a", "#b"}, []string{"#a", "#b"}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []Node{
				{ID: "n1", Kind: KindPage, Tags: tt.a},
				{ID: "n2", Kind: KindPage, Tags: tt.b},
			}
			links, err := Derive(nodes, Rules{CoTags: true})
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			if !tt.wantLink {
				if len(links) != 0 {
					t.Fatalf("got %d links, want none", len(links))
				}
				return
			}
			if len(links) != 1 {
				t.Fatalf("got %d links, want 1", len(links))
			}
			if links[0].Value != tt.wantValue || links[0].Shared() != tt.wantValue {
				t.Errorf("value = %d shared = %d, want %d", links[0].Value, links[0].Shared(), tt.wantValue)
			}
		})
	}
}

func hierarchyFixture(sections, attachments []string) []Node {
	nodes := []Node{
		{ID: "root", Kind: KindPage},
		{ID: "summary", Kind: KindPage},
	}
	for _, s := range sections {
		nodes = append(nodes, Node{ID: s, Kind: KindPage})
	}
	for _, a := range attachments {
		nodes = append(nodes, Node{ID: a, Kind: KindPDF})
	}
	return nodes
}

func testHierarchy() HierarchyRule {
	return HierarchyRule{
		Root:             "root",
		Summary:          "summary",
		SectionPrefix:    "section-",
		SectionNumber:    `section-(\d+)`,
		AttachmentFormat: "attachment-%s",
	}
}

func TestDerive_HierarchyChain(t *testing.T) {
	rule := testHierarchy()
	nodes := hierarchyFixture(
		[]string{"section-1", "section-2", "section-3"},
		[]string{"attachment-1", "attachment-3"},
	)
	g, err := New(nodes, Rules{Hierarchy: &rule})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	h := func(s, t string) Link {
		return Link{Source: s, Target: t, Type: LinkHierarchy, Value: HierarchyValue}
	}
	want := []Link{
		h("root", "summary"),
		h("summary", "section-1"),
		h("summary", "section-2"),
		h("summary", "section-3"),
		h("section-1", "attachment-1"),
		h("section-3", "attachment-3"),
	}
	if !reflect.DeepEqual(g.Links, want) {
		t.Errorf("Links = %+v\nwant %+v", g.Links, want)
	}
}

func TestDerive_HierarchySuffixBoundary(t *testing.T) {
	rule := testHierarchy()
	nodes := hierarchyFixture([]string{"section-1"}, []string{"attachment-10", "attachment-1"})
	links, err := Derive(nodes, Rules{Hierarchy: &rule})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	last := links[len(links)-1]
	if last.Source != "section-1" || last.Target != "attachment-1" {
		t.Errorf("section-1 linked to %s, want attachment-1", last.Target)
	}
}

func TestDerive_HierarchyMissingSummary(t *testing.T) {
	rule := testHierarchy()
	nodes := []Node{
		{ID: "root", Kind: KindPage},
		{ID: "section-1", Kind: KindPage},
		{ID: "attachment-1", Kind: KindPDF},
	}
	links, err := Derive(nodes, Rules{Hierarchy: &rule})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(links) != 1 || links[0].Target != "attachment-1" {
		t.Errorf("links = %+v, want only the section -> attachment link", links)
	}
}

func TestDerive_HierarchyBadPattern(t *testing.T) {
	rule := testHierarchy()
	rule.SectionNumber = `section-\d+`
	if _, err := Derive(nil, Rules{Hierarchy: &rule}); err == nil {
		t.Error("expected error for pattern without capture group")
	}
}

func TestDerive_DefaultHierarchy(t *testing.T) {
	rule := DefaultHierarchy()
	nodes := []Node{
		{ID: "PeskinQFT Sec2-1.pdf", Kind: KindPDF},
		{ID: "PeskinQFT Sec2-2.pdf", Kind: KindPDF},
		{ID: "2.1 The Necessity of the Field Viewpoint", Kind: KindPage},
		{ID: "2.2 Elements of Classical Field Theory", Kind: KindPage},
		{ID: "PeskinQFTまとめ", Kind: KindPage},
		{ID: "勉強の軌跡", Kind: KindPage},
	}
	links, err := Derive(nodes, Rules{Hierarchy: &rule})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(links) != 5 {
		t.Fatalf("got %d links, want 5: %+v", len(links), links)
	}
	if links[0].Source != "勉強の軌跡" || links[0].Target != "PeskinQFTまとめ" {
		t.Errorf("first link = %+v", links[0])
	}
	if links[4].Target != "PeskinQFT Sec2-2.pdf" {
		t.Errorf("last link target = %s", links[4].Target)
	}
}

func TestNew_DropsDanglingLinks(t *testing.T) {
	nodes := []Node{
		{ID: "A", Kind: KindPage, Tags: []string{"#x", "#missing"}},
		{ID: "#x", Kind: KindTag},
	}
	g, err := New(nodes, Rules{Tags: true, CoTags: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, l := range g.Links {
		if !g.Has(l.Source) || !g.Has(l.Target) {
			t.Errorf("link %s -> %s has a missing endpoint", l.Source, l.Target)
		}
	}
	if len(g.Links) != 1 || len(g.Dropped) != 1 {
		t.Errorf("links = %d dropped = %d, want 1 and 1", len(g.Links), len(g.Dropped))
	}
}

func TestNew_DuplicateID(t *testing.T) {
	nodes := []Node{{ID: "A"}, {ID: "A"}}
	_, err := New(nodes, Rules{})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestNew_InvalidKind(t *testing.T) {
	_, err := New([]Node{{ID: "A", Kind: "video"}}, Rules{})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("error = %v, want ErrInvalidKind", err)
	}
}

func TestDerive_DuplicatesPreserved(t *testing.T) {
	nodes := []Node{
		{ID: "A", Kind: KindPage, Tags: []string{"#x", "#x"}},
		{ID: "#x", Kind: KindTag},
	}
	links, err := Derive(nodes, Rules{Tags: true})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(links) != 2 {
		t.Errorf("got %d links, want 2 (duplicates are kept)", len(links))
	}
}
