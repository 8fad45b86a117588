package graph

import "fmt"

// Graph is a node set plus its derived link set.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`

	// Dropped holds derived links whose endpoints did not resolve.
	Dropped []Link `json:"-"`

	index map[string]int
}

// New builds a graph from node literals, deriving links with rules.
// Dangling link references are dropped silently.
func New(nodes []Node, rules Rules) (*Graph, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		}
		index[n.ID] = i
	}

	derived, err := Derive(nodes, rules)
	if err != nil {
		return nil, fmt.Errorf("deriving links: %w", err)
	}

	g := &Graph{Nodes: nodes, index: index}
	for _, l := range derived {
		if g.Has(l.Source) && g.Has(l.Target) {
			g.Links = append(g.Links, l)
		} else {
			g.Dropped = append(g.Dropped, l)
		}
	}
	return g, nil
}

// Has reports whether a node with id exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// IndexOf returns the dataset position of id, or -1.
func (g *Graph) IndexOf(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// Degree counts links incident to id.
func (g *Graph) Degree(id string) int {
	n := 0
	for _, l := range g.Links {
		if l.Touches(id) {
			n++
		}
	}
	return n
}

// Subgraph keeps the nodes accepted by keep and the links between them.
// Order is preserved.
func (g *Graph) Subgraph(keep func(Node) bool) *Graph {
	sub := &Graph{index: make(map[string]int)}
	for _, n := range g.Nodes {
		if keep(n) {
			sub.index[n.ID] = len(sub.Nodes)
			sub.Nodes = append(sub.Nodes, n)
		}
	}
	for _, l := range g.Links {
		if sub.Has(l.Source) && sub.Has(l.Target) {
			sub.Links = append(sub.Links, l)
		}
	}
	return sub
}

// Neighborhood is the immediate surroundings of a node, split by direction.
type Neighborhood struct {
	Center string
	Out    map[string]bool // targets of links leaving Center
	In     map[string]bool // sources of links entering Center
}

// Contains reports whether id is the center or a neighbor.
func (nb Neighborhood) Contains(id string) bool {
	return id == nb.Center || nb.Out[id] || nb.In[id]
}

// Neighborhood returns the direct neighbors of id.
func (g *Graph) Neighborhood(id string) Neighborhood {
	nb := Neighborhood{Center: id, Out: map[string]bool{}, In: map[string]bool{}}
	for _, l := range g.Links {
		switch id {
		case l.Source:
			nb.Out[l.Target] = true
		case l.Target:
			nb.In[l.Source] = true
		}
	}
	return nb
}
