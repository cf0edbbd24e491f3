package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olehluchkiv/gofeatures/internal/feature"
)

type jsonReport struct {
	Input    string        `json:"input"`
	Relation string        `json:"relation"`
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	Name       string          `json:"name"`
	Concepts   int             `json:"concepts"`
	Purged     int             `json:"purged"`
	Candidates []jsonCandidate `json:"candidates"`
}

type jsonCandidate struct {
	ID     string    `json:"id"`
	Extent []string  `json:"extent"`
	Intent []string  `json:"intent"`
	Adhoc  []string  `json:"adhoc,omitempty"`
	Tags   []jsonTag `json:"tags"`
}

type jsonTag struct {
	Kind                  feature.Kind `json:"kind"`
	Anchor                string       `json:"anchor,omitempty"`
	AnchorCoverage        float64      `json:"anchor_coverage"`
	ConfigurationCoverage float64      `json:"configuration_coverage,omitempty"`
	Related               []string     `json:"related,omitempty"`
}

func writeJSON(w io.Writer, r *Report, ctx *Context) error {
	out := jsonReport{
		Input:    r.Input,
		Relation: string(r.Relation),
		Sections: make([]jsonSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		if err := ctx.number(s.Lattice); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
		concepts, err := s.Lattice.Concepts()
		if err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
		js := jsonSection{
			Name:       s.Name,
			Concepts:   concepts,
			Purged:     s.Purged,
			Candidates: make([]jsonCandidate, 0, len(s.Candidates)),
		}
		for _, c := range s.Candidates {
			jc := jsonCandidate{
				ID:     ctx.Label(s.Lattice, c.Node.ID()),
				Extent: typeNames(c.Node.Extent()),
				Intent: attributeNames(c.Node.Intent()),
			}
			if adhoc := s.Adhoc[c.Node.ID()]; adhoc.Len() > 0 {
				jc.Adhoc = attributeNames(adhoc)
			}
			for _, t := range c.Classification.Ordered() {
				jt := jsonTag{
					Kind:                  t.Kind,
					AnchorCoverage:        t.AnchorCoverage,
					ConfigurationCoverage: t.ConfigurationCoverage,
				}
				if t.Anchor != nil {
					jt.Anchor = t.Anchor.QualifiedName()
				}
				for _, rel := range t.Related {
					jt.Related = append(jt.Related, rel.QualifiedName())
				}
				jc.Tags = append(jc.Tags, jt)
			}
			js.Candidates = append(js.Candidates, jc)
		}
		out.Sections = append(out.Sections, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
