package graph

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules selects which derivation rules run.
type Rules struct {
	Tags      bool           // rule A: content -> tag
	CoTags    bool           // rule B: content <-> content sharing tags
	Hierarchy *HierarchyRule // rule C: fixed page hierarchy, nil to skip
}

// HierarchyRule describes the hand-coded page hierarchy:
// root -> summary -> each section -> the attachment numbered like the section.
type HierarchyRule struct {
	Root           string `json:"root" yaml:"root" toml:"root"`
	Summary        string `json:"summary" yaml:"summary" toml:"summary"`
	SectionPrefix  string `json:"section_prefix" yaml:"section_prefix" toml:"section_prefix"`
	SectionExclude string `json:"section_exclude,omitempty" yaml:"section_exclude,omitempty" toml:"section_exclude"`
	// SectionNumber must contain exactly one capture group holding the number.
	SectionNumber string `json:"section_number" yaml:"section_number" toml:"section_number"`
	// AttachmentFormat is a fmt pattern with a single %s for the number.
	AttachmentFormat string `json:"attachment_format" yaml:"attachment_format" toml:"attachment_format"`
}

// HierarchyValue is the weight of hierarchy links.
const HierarchyValue = 2

// DefaultHierarchy reproduces the study-trail hierarchy of the site.
func DefaultHierarchy() HierarchyRule {
	return HierarchyRule{
		Root:             "勉強の軌跡",
		Summary:          "PeskinQFTまとめ",
		SectionPrefix:    "2.",
		SectionExclude:   "まとめ",
		SectionNumber:    `2\.(\d+)`,
		AttachmentFormat: "Sec2-%s",
	}
}

// RulesFor returns the derivation rules used by a renderer kind.
// The force renderer links by shared tags, the orbit renderer by hierarchy.
func RulesFor(renderer string) Rules {
	switch renderer {
	case "orbit":
		h := DefaultHierarchy()
		return Rules{Tags: true, Hierarchy: &h}
	default:
		return Rules{Tags: true, CoTags: true}
	}
}

// Derive computes links from node tag memberships and the hierarchy rule.
// Output is in insertion order (A, then B, then C) and is not de-duplicated.
// Links may reference missing nodes; New drops those.
func Derive(nodes []Node, rules Rules) ([]Link, error) {
	var links []Link
	if rules.Tags {
		links = append(links, tagLinks(nodes)...)
	}
	if rules.CoTags {
		links = append(links, coTagLinks(nodes)...)
	}
	if rules.Hierarchy != nil {
		hl, err := hierarchyLinks(nodes, *rules.Hierarchy)
		if err != nil {
			return nil, err
		}
		links = append(links, hl...)
	}
	return links, nil
}

// articles returns the nodes that carry tags, in dataset order.
func articles(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if len(n.Tags) > 0 {
			out = append(out, n)
		}
	}
	return out
}

func tagLinks(nodes []Node) []Link {
	var links []Link
	for _, n := range articles(nodes) {
		for _, tag := range n.Tags {
			links = append(links, Link{
				Source: n.ID,
				Target: tag,
				Type:   LinkTag,
				Value:  1,
			})
		}
	}
	return links
}

func coTagLinks(nodes []Node) []Link {
	arts := articles(nodes)
	var links []Link
	for i := 0; i < len(arts); i++ {
		for j := i + 1; j < len(arts); j++ {
			shared := arts[i].SharedTags(arts[j])
			if len(shared) == 0 {
				continue
			}
			links = append(links, Link{
				Source:     arts[i].ID,
				Target:     arts[j].ID,
				Type:       LinkCoTag,
				Value:      len(shared),
				SharedTags: shared,
			})
		}
	}
	return links
}

func hierarchyLinks(nodes []Node, rule HierarchyRule) ([]Link, error) {
	numRe, err := regexp.Compile(rule.SectionNumber)
	if err != nil {
		return nil, fmt.Errorf("compiling section pattern: %w", err)
	}
	if numRe.NumSubexp() != 1 {
		return nil, fmt.Errorf("section pattern %q must have one capture group", rule.SectionNumber)
	}

	var root, summary *Node
	var sections, attachments []Node
	for i := range nodes {
		n := nodes[i]
		switch {
		case n.ID == rule.Root:
			root = &nodes[i]
		case n.ID == rule.Summary:
			summary = &nodes[i]
		case n.Kind == KindPage && isSection(n, rule):
			sections = append(sections, n)
		case n.Kind == KindPDF:
			attachments = append(attachments, n)
		}
	}

	link := func(src, dst string) Link {
		return Link{Source: src, Target: dst, Type: LinkHierarchy, Value: HierarchyValue}
	}

	var links []Link
	if root != nil && summary != nil {
		links = append(links, link(root.ID, summary.ID))
	}
	if summary != nil {
		for _, s := range sections {
			links = append(links, link(summary.ID, s.ID))
		}
	}
	for _, s := range sections {
		m := numRe.FindStringSubmatch(s.ID)
		if m == nil {
			continue
		}
		if a, ok := findAttachment(attachments, fmt.Sprintf(rule.AttachmentFormat, m[1])); ok {
			links = append(links, link(s.ID, a.ID))
		}
	}
	return links, nil
}

func isSection(n Node, rule HierarchyRule) bool {
	if !strings.HasPrefix(n.ID, rule.SectionPrefix) {
		return false
	}
	return rule.SectionExclude == "" || !strings.Contains(n.ID, rule.SectionExclude)
}

// findAttachment returns the first attachment whose id contains key, where
// key is not directly followed by another digit ("Sec2-1" must not match "Sec2-10").
func findAttachment(attachments []Node, key string) (Node, bool) {
	for _, a := range attachments {
		idx := strings.Index(a.ID, key)
		for idx >= 0 {
			end := idx + len(key)
			if end == len(a.ID) || a.ID[end] < '0' || a.ID[end] > '9' {
				return a, true
			}
			next := strings.Index(a.ID[idx+1:], key)
			if next < 0 {
				break
			}
			idx += next + 1
		}
	}
	return Node{}, false
}
