package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/feature"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

// writeLattice dumps every reachable node top-down with its full extent
// and intent, its reduced labels and its children.
func writeLattice(w io.Writer, r *Report, ctx *Context) error {
	var b strings.Builder
	for i, s := range r.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "lattice %s\n", s.Name)
		if err := dumpLattice(&b, s.Lattice, ctx); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpLattice(b *strings.Builder, l *feature.Lattice, ctx *Context) error {
	if err := ctx.number(l); err != nil {
		return err
	}
	reduced, copies, err := fca.Reduce(l)
	if err != nil {
		return err
	}
	return fca.Walk(l, fca.TopDown, make(fca.Visited), fca.Hooks[model.Type, *model.Attribute]{
		Process: func(n *feature.Node) {
			label := ctx.Label(l, n.ID())
			var marks []string
			if n.ID() == l.Top() {
				marks = append(marks, "top")
			}
			if n.ID() == l.Bottom() {
				marks = append(marks, "bottom")
			}
			if len(marks) > 0 {
				label += " (" + strings.Join(marks, ", ") + ")"
			}
			fmt.Fprintf(b, "%s\n", label)
			fmt.Fprintf(b, "    extent: %s\n", n.Extent())
			fmt.Fprintf(b, "    intent: %s\n", n.Intent())

			rn := reduced.Node(copies[n.ID()])
			fmt.Fprintf(b, "    owns: %s\n", rn.Extent())
			fmt.Fprintf(b, "    introduces: %s\n", rn.Intent())

			children := l.Children(n.ID())
			if len(children) == 0 {
				return
			}
			labels := make([]string, len(children))
			for i, c := range children {
				labels[i] = ctx.Label(l, c)
			}
			fmt.Fprintf(b, "    children: %s\n", strings.Join(labels, ", "))
		},
	})
}
