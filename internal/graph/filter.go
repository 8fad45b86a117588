package graph

// Filter controls which nodes take part in layout and drawing.
// Hidden nodes and their incident links are removed entirely.
type Filter struct {
	ShowTags        bool `json:"show_tags" yaml:"show_tags"`
	ShowAttachments bool `json:"show_attachments" yaml:"show_attachments"`
	ShowOrphans     bool `json:"show_orphans" yaml:"show_orphans"`
}

// ShowAll returns a filter that hides nothing.
func ShowAll() Filter {
	return Filter{ShowTags: true, ShowAttachments: true, ShowOrphans: true}
}

// Visible reports whether n passes the filter. Orphans are judged against
// the full link set of g; tag nodes are never treated as orphans.
func (f Filter) Visible(g *Graph, n Node) bool {
	switch {
	case n.IsTag():
		return f.ShowTags
	case n.IsAttachment() && !f.ShowAttachments:
		return false
	case !f.ShowOrphans && g.Degree(n.ID) == 0:
		return false
	}
	return true
}

// Apply returns the visible subgraph of g.
func (f Filter) Apply(g *Graph) *Graph {
	return g.Subgraph(func(n Node) bool {
		return f.Visible(g, n)
	})
}
