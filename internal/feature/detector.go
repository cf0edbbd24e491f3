package feature

import (
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

// Candidate is a classified candidate node.
type Candidate struct {
	Node           *Node
	Classification Classification
}

// Detector selects candidate feature nodes and classifies them.
//
// A node is a candidate when its extent has more than one member, no
// child has an extent of the same size, and its intent is not empty.
type Detector struct {
	di         DomainInterfaces
	logger     *slog.Logger
	lattice    *Lattice
	candidates map[fca.NodeID]Candidate
}

// NewDetector returns a detector. A nil logger discards output.
func NewDetector(di DomainInterfaces, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Detector{
		di:         di,
		logger:     logger.With("component", "feature.detector"),
		candidates: make(map[fca.NodeID]Candidate),
	}
}

// Run classifies the candidates of l, top-down. Results accumulate until
// Reset.
func (d *Detector) Run(l *Lattice) error {
	d.lattice = l
	err := fca.Walk(l, fca.TopDown, make(fca.Visited), fca.Hooks[model.Type, *model.Attribute]{
		Process: d.process,
	})
	if err != nil {
		return err
	}
	d.logger.Debug("features detected", "candidates", len(d.candidates))
	return nil
}

// Reset forgets every candidate.
func (d *Detector) Reset() {
	d.lattice = nil
	d.candidates = make(map[fca.NodeID]Candidate)
}

// Candidates returns the classified nodes ordered by NodeID.
func (d *Detector) Candidates() []Candidate {
	ids := make([]fca.NodeID, 0, len(d.candidates))
	for id := range d.candidates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Candidate, len(ids))
	for i, id := range ids {
		out[i] = d.candidates[id]
	}
	return out
}

// Classification returns the classification of node id, if it is a
// candidate.
func (d *Detector) Classification(id fca.NodeID) (Classification, bool) {
	c, ok := d.candidates[id]
	return c.Classification, ok
}

func (d *Detector) process(n *Node) {
	size := n.Extent().Len()
	if size <= 1 {
		return
	}
	candidate := true
	for _, c := range d.lattice.Children(n.ID()) {
		if d.lattice.Node(c).Extent().Len() == size {
			candidate = false
		}
	}
	if !candidate || n.Intent().Len() == 0 {
		return
	}
	d.candidates[n.ID()] = Candidate{Node: n, Classification: d.Classify(n)}
}

// Classify tests n for interface implementations, class/subclass
// redefinitions and aggregations, in that order. Any subset may fire;
// when none does the node is Adhoc.
func (d *Detector) Classify(n *Node) Classification {
	var c Classification
	c.Tags = append(c.Tags, d.interfaceImplementations(n)...)
	c.Tags = append(c.Tags, d.subclassRedefinitions(n)...)
	c.Tags = append(c.Tags, d.aggregations(n)...)
	if len(c.Tags) == 0 {
		c.Tags = []Tag{{Kind: Adhoc}}
	}
	return c
}

func (d *Detector) interfaceImplementations(n *Node) []Tag {
	extent := n.Extent()
	var tags []Tag
	for _, member := range sortedTypes(extent) {
		if !member.IsInterface() {
			continue
		}
		impls := fca.NewSet[model.Type]()
		for _, impl := range member.Implementors() {
			impls.Add(impl)
			for _, sub := range impl.Subtypes() {
				impls.Add(sub)
			}
		}
		impls.RetainAll(extent)
		if impls.Len() == 0 {
			continue
		}
		tags = append(tags, d.tag(n, InterfaceImplementations, member, impls, impls.Len() == extent.Len()-1))
	}
	return tags
}

func (d *Detector) subclassRedefinitions(n *Node) []Tag {
	extent := n.Extent()
	var tags []Tag
	for _, member := range sortedTypes(extent) {
		subs := fca.NewSet[model.Type]()
		for _, sub := range member.Subtypes() {
			// Interfaces are redefined by interfaces only; concrete
			// implementors count as interface implementations.
			if member.IsInterface() && !sub.IsInterface() {
				continue
			}
			subs.Add(sub)
		}
		subs.RetainAll(extent)
		if subs.Len() == 0 {
			continue
		}
		tags = append(tags, d.tag(n, ClassSubclassRedefinitions, member, subs, subs.Len() == extent.Len()-1))
	}
	return tags
}

// aggregations looks for members holding a field of another member's
// type, where the field is used by a method of the intent. The result is
// keyed by the component type and lists its aggregates.
func (d *Detector) aggregations(n *Node) []Tag {
	extent := n.Extent()

	intentMethods := make(map[string]struct{})
	for attr := range n.Intent() {
		if attr.Extended || attr.Method == nil {
			continue
		}
		intentMethods[attr.Method.Name()] = struct{}{}
	}

	aggregates := make(map[model.Type]fca.Set[model.Type])
	components := fca.NewSet[model.Type]()
	for _, member := range sortedTypes(extent) {
		held := fca.NewSet[model.Type]()
		for _, f := range member.Fields() {
			if _, ok := intentMethods[f.Location()]; !ok {
				continue
			}
			if ft := d.fieldType(member, f); ft != nil {
				held.Add(ft)
			}
		}
		held.RetainAll(extent)
		for component := range held {
			if aggregates[component] == nil {
				aggregates[component] = fca.NewSet[model.Type]()
			}
			aggregates[component].Add(member)
			components.Add(component)
		}
	}

	var tags []Tag
	for _, component := range sortedTypes(components) {
		aggs := aggregates[component]
		tags = append(tags, d.tag(n, Aggregations, component, aggs, aggs.Len() >= extent.Len()-1))
	}
	return tags
}

// fieldType resolves the named type a field refers to. Unresolved and
// ambiguous names give no evidence.
func (d *Detector) fieldType(owner model.Type, f model.Field) model.Type {
	if !f.IsClassType() {
		return nil
	}
	name := model.BaseTypeName(f.TypeSignature())
	t, err := d.di.Project().FindType(name)
	switch {
	case err == nil:
		return t
	case errors.Is(err, model.ErrAmbiguousType):
		d.logger.Warn("cannot resolve field type",
			"type", owner.QualifiedName(), "field", f.Name(), "error", err)
	default:
		d.logger.Debug("field type not found, skipping field",
			"type", owner.QualifiedName(), "field", f.Name(), "signature", f.TypeSignature())
	}
	return nil
}

// tag measures how much of the anchor's behavior the node covers.
func (d *Detector) tag(n *Node, m Mechanism, anchor model.Type, related fca.Set[model.Type], fullExtent bool) Tag {
	local := d.di.Local(anchor)
	common := local.Clone()
	for r := range related {
		common.RetainAll(d.di.Cumulative(r))
	}

	intent := n.Intent().Len()
	fullBehavior := common.Len() == intent
	t := Tag{
		Kind:           KindOf(m, fullExtent, fullBehavior),
		Anchor:         anchor,
		AnchorCoverage: ratio(intent, local.Len()),
	}
	if !(fullExtent && fullBehavior) {
		t.ConfigurationCoverage = ratio(intent, common.Len())
		t.Related = sortedTypes(related)
	}
	return t
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
