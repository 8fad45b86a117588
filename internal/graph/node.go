// Package graph defines the knowledge graph domain types and link derivation.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a node.
type Kind string

// Node kinds.
const (
	KindPDF  Kind = "pdf"  // attachment document
	KindPage Kind = "page" // site page
	KindTag  Kind = "tag"  // tag hub
)

// TagPrefix marks tag identifiers.
const TagPrefix = "#"

// ValidKinds lists the supported node kinds.
var ValidKinds = []Kind{KindPDF, KindPage, KindTag}

// Validation errors.
var (
	ErrEmptyID     = errors.New("node id is required")
	ErrDuplicateID = errors.New("duplicate node id")
	ErrInvalidKind = errors.New("invalid node type")
	ErrEmptyGraph  = errors.New("graph has no nodes")
)

// Node is a content item or a tag hub.
type Node struct {
	ID    string   `json:"id" yaml:"id" toml:"id"`
	Kind  Kind     `json:"type,omitempty" yaml:"type,omitempty" toml:"type"`
	Group int      `json:"group,omitempty" yaml:"group,omitempty" toml:"group"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags"`
	URL   string   `json:"url,omitempty" yaml:"url,omitempty" toml:"url"`
	Title string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title"`
}

// IsTag reports whether the node is a tag hub. Older literals only mark
// tags by the "#" prefix, so both forms are accepted.
func (n Node) IsTag() bool {
	return n.Kind == KindTag || strings.HasPrefix(n.ID, TagPrefix)
}

// IsAttachment reports whether the node is a pdf attachment.
func (n Node) IsAttachment() bool {
	return n.Kind == KindPDF
}

// HasURL reports whether clicking the node navigates anywhere.
func (n Node) HasURL() bool {
	return n.URL != ""
}

// Label returns the display text for the node.
func (n Node) Label() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Validate checks a single node literal.
func (n Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if n.Kind == "" {
		return nil
	}
	for _, k := range ValidKinds {
		if n.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (node %s)", ErrInvalidKind, n.Kind, n.ID)
}

// HasTag reports whether the node carries tag.
func (n Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedTags returns the tags of n that other also carries, in n's order.
func (n Node) SharedTags(other Node) []string {
	var shared []string
	for _, t := range n.Tags {
		if other.HasTag(t) {
			shared = append(shared, t)
		}
	}
	return shared
}
