package report

import (
	"fmt"
	"io"
	"strings"
)

func writeText(w io.Writer, r *Report, ctx *Context) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Features of %s (relation: %s)\n", r.Input, r.Relation)

	for _, s := range r.Sections {
		if err := ctx.number(s.Lattice); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
		concepts, err := s.Lattice.Concepts()
		if err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
		fmt.Fprintf(&b, "\n== %s: %d concepts, %d candidates, %d extent members purged\n",
			s.Name, concepts, len(s.Candidates), s.Purged)
		if len(s.Candidates) == 0 {
			b.WriteString("no candidates\n")
			continue
		}
		for _, c := range s.Candidates {
			n := c.Node
			fmt.Fprintf(&b, "%s [%s]\n", ctx.Label(s.Lattice, n.ID()), strings.Join(typeNames(n.Extent()), ", "))
			fmt.Fprintf(&b, "    intent: %s\n", strings.Join(attributeNames(n.Intent()), ", "))
			for _, t := range c.Classification.Ordered() {
				fmt.Fprintf(&b, "    %s\n", t)
			}
			if adhoc := s.Adhoc[n.ID()]; adhoc.Len() > 0 {
				fmt.Fprintf(&b, "    adhoc: %s\n", strings.Join(attributeNames(adhoc), ", "))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
