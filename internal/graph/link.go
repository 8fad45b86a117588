package graph

// LinkType classifies a derived link.
type LinkType string

// Link types.
const (
	LinkTag       LinkType = "tag"       // content node -> tag node
	LinkCoTag     LinkType = "cotag"     // content node -> content node sharing tags
	LinkHierarchy LinkType = "hierarchy" // parent page -> child page/attachment
)

// Link is a directed, derived relationship between two nodes.
type Link struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Type       LinkType `json:"type"`
	Value      int      `json:"value"`
	SharedTags []string `json:"shared_tags,omitempty"`
}

// Shared returns the number of tags the endpoints share (co-tag links only).
func (l Link) Shared() int {
	return len(l.SharedTags)
}

// Touches reports whether id is one of the link's endpoints.
func (l Link) Touches(id string) bool {
	return l.Source == id || l.Target == id
}

// Other returns the endpoint opposite id.
func (l Link) Other(id string) string {
	if l.Source == id {
		return l.Target
	}
	return l.Source
}
