package main

import (
	"testing"

	"github.com/fatih/color"

	"github.com/matsen/kgraph/internal/dataset"
	"github.com/matsen/kgraph/internal/graph"
)

func TestParseRules(t *testing.T) {
	custom := &graph.HierarchyRule{Root: "home", Summary: "index", SectionPrefix: "1.", SectionNumber: `1\.(\d+)`, AttachmentFormat: "Ch%s"}

	tests := []struct {
		name          string
		in            string
		ds            *dataset.Dataset
		wantTags      bool
		wantCoTags    bool
		wantHierarchy string // root of the hierarchy rule, "" for none
		wantErr       bool
	}{
		{name: "tag only", in: "tag", ds: &dataset.Dataset{}, wantTags: true},
		{name: "all", in: "tag,cotag,hierarchy", ds: &dataset.Dataset{}, wantTags: true, wantCoTags: true, wantHierarchy: graph.DefaultHierarchy().Root},
		{name: "spaces and case", in: " Tag , CO-TAG ", ds: &dataset.Dataset{}, wantTags: true, wantCoTags: true},
		{name: "trailing comma", in: "cotag,", ds: &dataset.Dataset{}, wantCoTags: true},
		{name: "dataset hierarchy", in: "hierarchy", ds: &dataset.Dataset{Hierarchy: custom}, wantHierarchy: "home"},
		{name: "unknown", in: "tag,parent", ds: &dataset.Dataset{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRules(tt.in, tt.ds)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseRules() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRules() error = %v", err)
			}
			if got.Tags != tt.wantTags || got.CoTags != tt.wantCoTags {
				t.Errorf("parseRules() = tags %v cotags %v, want %v %v", got.Tags, got.CoTags, tt.wantTags, tt.wantCoTags)
			}
			root := ""
			if got.Hierarchy != nil {
				root = got.Hierarchy.Root
			}
			if root != tt.wantHierarchy {
				t.Errorf("hierarchy root = %q, want %q", root, tt.wantHierarchy)
			}
		})
	}
}

func TestParseRules_CopiesHierarchy(t *testing.T) {
	ds := &dataset.Dataset{Hierarchy: &graph.HierarchyRule{Root: "home"}}
	got, err := parseRules("hierarchy", ds)
	if err != nil {
		t.Fatalf("parseRules() error = %v", err)
	}
	got.Hierarchy.Root = "changed"
	if ds.Hierarchy.Root != "home" {
		t.Error("parseRules() shares the dataset's hierarchy rule")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"serve.addr", "serve.addr"},
		{"layout.link-distance", "layout.link_distance"},
		{" Serve.Base-URL ", "serve.base_url"},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{":8035", "localhost:8035"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := displayAddr(tt.in); got != tt.want {
			t.Errorf("displayAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab    "},
		{"abcd", 4, "abcd  "},
		{"勉強", 4, "勉強  "},
		{"勉強", 6, "勉強    "},
	}
	for _, tt := range tests {
		if got := pad(cell{text: tt.in}, tt.width); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPad_ColorDoesNotCountTowardWidth(t *testing.T) {
	c := color.New(color.FgCyan)
	c.EnableColor()
	got := pad(cell{text: "ab", color: c}, 4)
	if want := c.Sprint("ab") + "    "; got != want {
		t.Errorf("pad() = %q, want %q", got, want)
	}
}
