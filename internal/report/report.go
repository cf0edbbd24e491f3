// Package report renders the detected features of one or more concept
// lattices as text, a lattice dump, a Mermaid flowchart, or JSON.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/feature"
	"github.com/olehluchkiv/gofeatures/internal/model"
	"github.com/olehluchkiv/gofeatures/internal/relation"
)

// Format selects a renderer.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
	FormatLattice Format = "lattice"
)

// ErrUnknownFormat is returned for an unsupported Format.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates s as a report format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatMermaid, FormatLattice:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Section is the analysis of one lattice: the whole module, or one
// package in per-package mode.
type Section struct {
	Name       string
	Lattice    *feature.Lattice
	Candidates []feature.Candidate
	// Adhoc holds, per node, the intent attributes no root extended
	// attribute explains.
	Adhoc  map[fca.NodeID]fca.Set[*model.Attribute]
	Purged int
}

// Report is everything one run renders.
type Report struct {
	Input    string
	Relation relation.Kind
	Sections []Section
}

// Write renders r in format f. ctx carries the node labels, so several
// renderings sharing one Context name the same node the same way.
func Write(w io.Writer, f Format, r *Report, ctx *Context) error {
	if ctx == nil {
		ctx = NewContext()
	}
	switch f {
	case FormatText:
		return writeText(w, r, ctx)
	case FormatLattice:
		return writeLattice(w, r, ctx)
	case FormatMermaid:
		return writeMermaid(w, r, ctx)
	case FormatJSON:
		return writeJSON(w, r, ctx)
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// Context is the presentation state of a rendering run: node labels and
// the counters they are drawn from. Labels are handed out in request
// order and are unique across every lattice the context has seen.
type Context struct {
	// MaxAttributes truncates attribute lists in Mermaid nodes. Zero
	// means unlimited.
	MaxAttributes int
	// IncludeInit emits the %%{init:}%% directive, for standalone .mmd
	// files.
	IncludeInit bool

	labels   map[*feature.Lattice]map[fca.NodeID]string
	sections int
	nodes    int
}

// NewContext returns a context with the default Mermaid truncation.
func NewContext() *Context {
	return &Context{MaxAttributes: 5, labels: make(map[*feature.Lattice]map[fca.NodeID]string)}
}

// Label returns the label of node id of l, assigning the next free one on
// first request.
func (c *Context) Label(l *feature.Lattice, id fca.NodeID) string {
	byID := c.labels[l]
	if byID == nil {
		byID = make(map[fca.NodeID]string)
		c.labels[l] = byID
	}
	if label, ok := byID[id]; ok {
		return label
	}
	c.nodes++
	label := fmt.Sprintf("C%d", c.nodes)
	byID[id] = label
	return label
}

// number labels every reachable node of l in top-down order.
func (c *Context) number(l *feature.Lattice) error {
	return fca.Walk(l, fca.TopDown, make(fca.Visited), fca.Hooks[model.Type, *model.Attribute]{
		Process: func(n *feature.Node) { c.Label(l, n.ID()) },
	})
}

func (c *Context) nextSection() string {
	c.sections++
	return fmt.Sprintf("S%d", c.sections)
}

func typeNames(s fca.Set[model.Type]) []string {
	types := s.Slice(model.Less)
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.QualifiedName()
	}
	return out
}

func attributeNames(s fca.Set[*model.Attribute]) []string {
	return s.Strings()
}
