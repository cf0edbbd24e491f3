package feature

import (
	"fmt"
	"strings"

	"github.com/olehluchkiv/gofeatures/internal/model"
)

// Tag is one fired classification of a candidate node.
type Tag struct {
	Kind Kind
	// Anchor is the type the mechanism is rooted in: the interface, the
	// supertype, or the aggregated component. Nil for Adhoc.
	Anchor model.Type
	// AnchorCoverage is |intent| / |local domain interface of Anchor|.
	AnchorCoverage float64
	// ConfigurationCoverage is |intent| / |behavior common to Anchor and
	// Related|. Zero for full-extent full-behavior tags.
	ConfigurationCoverage float64
	// Related are the extent members tied to Anchor, ordered by name. Nil
	// for full-extent full-behavior tags.
	Related []model.Type
}

func (t Tag) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	if t.Anchor != nil {
		fmt.Fprintf(&b, "; ANCHOR: [%s]", t.Anchor.QualifiedName())
		fmt.Fprintf(&b, "; ANCHOR TYPE BEHAVIOR COVERAGE: [%.2f]", t.AnchorCoverage)
	}
	if t.ConfigurationCoverage > 0 {
		fmt.Fprintf(&b, "; CONFIGURATION BEHAVIOR COVERAGE: [%.2f]", t.ConfigurationCoverage)
	}
	if t.Related != nil {
		names := make([]string, len(t.Related))
		for i, r := range t.Related {
			names[i] = r.QualifiedName()
		}
		fmt.Fprintf(&b, "; RELATED TYPES: [%s]", strings.Join(names, ", "))
	}
	return b.String()
}

// Classification is the set of tags fired for one candidate node. A node
// where nothing fired carries a single Adhoc tag.
type Classification struct {
	Tags []Tag
}

// IsAdhoc reports whether no mechanism explains the node.
func (c Classification) IsAdhoc() bool {
	return len(c.Tags) == 1 && c.Tags[0].Kind == Adhoc
}

// Has reports whether some tag has kind k.
func (c Classification) Has(k Kind) bool {
	for _, t := range c.Tags {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Ordered returns the tags with full-extent tags first, otherwise in
// firing order.
func (c Classification) Ordered() []Tag {
	out := make([]Tag, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t.Kind.FullExtent() {
			out = append(out, t)
		}
	}
	for _, t := range c.Tags {
		if !t.Kind.FullExtent() {
			out = append(out, t)
		}
	}
	return out
}

// String joins the ordered tags with " ## ".
func (c Classification) String() string {
	tags := c.Ordered()
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ## ")
}
