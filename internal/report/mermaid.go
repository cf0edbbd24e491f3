package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/feature"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

// writeMermaid produces a Mermaid flowchart with one subgraph per
// section. Each node shows the types it owns and the attributes it
// introduces; candidates are styled by classification.
func writeMermaid(w io.Writer, r *Report, ctx *Context) error {
	var b strings.Builder

	// Header + style definitions.
	if ctx.IncludeInit {
		b.WriteString("%%{init: {'theme': 'base', 'themeVariables': {'primaryColor': '#ffffff', 'primaryBorderColor': '#cccccc', 'primaryTextColor': '#000000', 'lineColor': '#555555'}}}%%\n")
	}
	b.WriteString("flowchart TD")
	if len(r.Sections) > 0 {
		b.WriteString("\n")
		b.WriteString("    classDef featureStyle fill:#4a9c6d,stroke:#357a50,color:#fff,stroke-width:2px,font-weight:bold\n")
		b.WriteString("    classDef adhocStyle fill:#d98c3f,stroke:#a86a2c,color:#fff,stroke-width:2px")
	}

	for _, s := range r.Sections {
		if err := writeSubgraph(&b, s, ctx); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
	}

	// Style assignments section.
	for _, s := range r.Sections {
		for _, c := range s.Candidates {
			style := "featureStyle"
			if c.Classification.IsAdhoc() {
				style = "adhocStyle"
			}
			fmt.Fprintf(&b, "\n    class %s %s", ctx.Label(s.Lattice, c.Node.ID()), style)
		}
	}

	_, err := io.WriteString(w, b.String()+"\n")
	return err
}

func writeSubgraph(b *strings.Builder, s Section, ctx *Context) error {
	if err := ctx.number(s.Lattice); err != nil {
		return err
	}
	reduced, copies, err := fca.Reduce(s.Lattice)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "\n    subgraph %s [\"%s\"]", ctx.nextSection(), escapeLabel(s.Name))
	var edges []string
	err = fca.Walk(s.Lattice, fca.TopDown, make(fca.Visited), fca.Hooks[model.Type, *model.Attribute]{
		Process: func(n *feature.Node) {
			rn := reduced.Node(copies[n.ID()])
			fmt.Fprintf(b, "\n        %s[\"%s\"]", ctx.Label(s.Lattice, n.ID()), nodeLabel(ctx, s.Lattice, n, rn))
		},
		PreDescend: func(n *feature.Node) {
			for _, c := range s.Lattice.Children(n.ID()) {
				edges = append(edges, fmt.Sprintf("        %s --> %s", ctx.Label(s.Lattice, n.ID()), ctx.Label(s.Lattice, c)))
			}
		},
	})
	if err != nil {
		return err
	}
	for _, e := range edges {
		b.WriteString("\n" + e)
	}
	b.WriteString("\n    end")
	return nil
}

// nodeLabel lists the owned types by name and the introduced attributes,
// truncated to ctx.MaxAttributes.
func nodeLabel(ctx *Context, l *feature.Lattice, n, reduced *feature.Node) string {
	parts := []string{"<b>" + ctx.Label(l, n.ID()) + "</b>"}
	owned := reduced.Extent().Slice(model.Less)
	if len(owned) > 0 {
		names := make([]string, len(owned))
		for i, t := range owned {
			names[i] = t.Name()
		}
		parts = append(parts, "<i>"+escapeLabel(strings.Join(names, ", "))+"</i>")
	}

	attrs := attributeNames(reduced.Intent())
	limit := len(attrs)
	truncated := false
	if ctx.MaxAttributes > 0 && limit > ctx.MaxAttributes {
		limit = ctx.MaxAttributes
		truncated = true
	}
	for i := 0; i < limit; i++ {
		parts = append(parts, "+"+SanitizeSignature(attrs[i]))
	}
	if truncated {
		parts = append(parts, "...")
	}
	return strings.Join(parts, "<br/>")
}

// SanitizeSignature removes characters in method signatures that break
// Mermaid labels. Uses only ASCII-safe replacements that work in both
// mmdc CLI and browser Mermaid.js.
func SanitizeSignature(sig string) string {
	// Drop the channel direction, "<" opens a tag in HTML labels.
	sig = strings.ReplaceAll(sig, "<-chan", "chan")
	sig = strings.ReplaceAll(sig, "chan<-", "chan")
	sig = strings.ReplaceAll(sig, "interface{}", "any")
	// Strip remaining empty braces: empty type literals like struct{}.
	sig = strings.ReplaceAll(sig, "{}", "")
	return escapeLabel(sig)
}

func escapeLabel(s string) string {
	r := strings.NewReplacer("\"", "#quot;", "<", "#lt;", ">", "#gt;")
	return r.Replace(s)
}
