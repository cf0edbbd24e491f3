package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/feature"
	"github.com/olehluchkiv/gofeatures/internal/model"
	"github.com/olehluchkiv/gofeatures/internal/relation"
)

// workersSection builds the lattice of a Worker interface implemented by
// Engine and Pump, where Pump adds Rate. Purging removes Worker from the
// bottom node, leaving one candidate: all three types sharing Start and
// Stop.
func workersSection(t *testing.T) Section {
	t.Helper()
	p := model.NewProject()
	worker := p.Add(model.NewType(model.TypeSpec{PkgPath: "p", Name: "Worker", Interface: true}))
	engine := p.Add(model.NewType(model.TypeSpec{PkgPath: "p", Name: "Engine"}))
	pump := p.Add(model.NewType(model.TypeSpec{PkgPath: "p", Name: "Pump"}))
	for _, typ := range []*model.TypeDef{worker, engine, pump} {
		typ.AddMethod(model.NewMethod("Start", nil, "error"))
		typ.AddMethod(model.NewMethod("Stop", nil, "error"))
	}
	pump.AddMethod(model.NewMethod("Rate", nil, "int"))
	model.Link(engine, worker)
	model.Link(pump, worker)

	res, err := relation.NewBuilder(relation.Options{}, nil).Build(relation.KindReverse, p)
	require.NoError(t, err)
	l, err := fca.BuildLattice[model.Type, *model.Attribute](res.Relation)
	require.NoError(t, err)

	purger := feature.NewPurger(res, nil)
	require.NoError(t, purger.Run(l))
	det := feature.NewDetector(res, nil)
	require.NoError(t, det.Run(l))

	return Section{Name: "p", Lattice: l, Candidates: det.Candidates(), Purged: purger.Removed()}
}

func render(t *testing.T, f Format, r *Report, ctx *Context) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f, r, ctx))
	return buf.String()
}

func TestWriteText(t *testing.T) {
	s := workersSection(t)
	require.Len(t, s.Candidates, 1)
	r := &Report{Input: "./workers", Relation: relation.KindReverse, Sections: []Section{s}}

	got := render(t, FormatText, r, nil)
	want := "Features of ./workers (relation: reverse)\n" +
		"\n== p: 3 concepts, 1 candidates, 1 extent members purged\n" +
		"C2 [p.Engine, p.Pump, p.Worker]\n" +
		"    intent: Start() error, Stop() error\n" +
		"    FULL_EXTENT_FULL_BEHAVIOR_EXPLICIT_INTERFACE_IMPLEMENTATIONS; ANCHOR: [p.Worker]; ANCHOR TYPE BEHAVIOR COVERAGE: [1.00]\n"
	assert.Equal(t, want, got)
}

func TestWriteTextAdhocAndEmpty(t *testing.T) {
	s := workersSection(t)
	id := s.Candidates[0].Node.ID()
	s.Adhoc = map[fca.NodeID]fca.Set[*model.Attribute]{id: s.Candidates[0].Node.Intent().Clone()}
	empty := Section{Name: "q", Lattice: workersSection(t).Lattice}

	got := render(t, FormatText, &Report{Input: "x", Relation: relation.KindExtended, Sections: []Section{s, empty}}, nil)
	assert.Contains(t, got, "    adhoc: Start() error, Stop() error\n")
	assert.Contains(t, got, "== q: 3 concepts, 0 candidates, 0 extent members purged\nno candidates\n")
}

func TestWriteLattice(t *testing.T) {
	r := &Report{Input: "./workers", Relation: relation.KindReverse, Sections: []Section{workersSection(t)}}
	got := render(t, FormatLattice, r, nil)

	assert.True(t, strings.HasPrefix(got, "lattice p\nC1 (top)\n"))
	assert.Contains(t, got, "    intent: {}\n    owns: {}\n    introduces: {}\n    children: C2\n")
	assert.Contains(t, got, "C2\n    extent: {p.Engine, p.Pump, p.Worker}\n    intent: {Start() error, Stop() error}\n")
	assert.Contains(t, got, "    introduces: {Start() error, Stop() error}\n    children: C3\n")
	// Purging left only Pump in the bottom extent.
	assert.Contains(t, got, "C3 (bottom)\n    extent: {p.Pump}\n")
	assert.Contains(t, got, "    introduces: {Rate() int}\n")
}

func TestWriteMermaid(t *testing.T) {
	r := &Report{Input: "./workers", Relation: relation.KindReverse, Sections: []Section{workersSection(t)}}
	ctx := NewContext()
	ctx.IncludeInit = true
	got := render(t, FormatMermaid, r, ctx)

	assert.True(t, strings.HasPrefix(got, "%%{init:"))
	assert.Contains(t, got, "\nflowchart TD\n")
	assert.Contains(t, got, "classDef featureStyle")
	assert.Contains(t, got, "subgraph S1 [\"p\"]")
	assert.Contains(t, got, "C2[\"<b>C2</b><br/><i>Engine, Worker</i><br/>+Start() error<br/>+Stop() error\"]")
	assert.Contains(t, got, "C3[\"<b>C3</b><br/><i>Pump</i><br/>+Rate() int\"]")
	assert.Contains(t, got, "        C1 --> C2\n        C2 --> C3\n    end")
	assert.Contains(t, got, "class C2 featureStyle")
	assert.NotContains(t, got, "class C3")
}

func TestMermaidTruncatesAttributes(t *testing.T) {
	r := &Report{Input: "./workers", Relation: relation.KindReverse, Sections: []Section{workersSection(t)}}
	ctx := NewContext()
	ctx.MaxAttributes = 1
	got := render(t, FormatMermaid, r, ctx)
	assert.Contains(t, got, "C2[\"<b>C2</b><br/><i>Engine, Worker</i><br/>+Start() error<br/>...\"]")
}

func TestWriteJSON(t *testing.T) {
	r := &Report{Input: "./workers", Relation: relation.KindReverse, Sections: []Section{workersSection(t)}}
	got := render(t, FormatJSON, r, nil)

	var out struct {
		Input    string `json:"input"`
		Relation string `json:"relation"`
		Sections []struct {
			Name       string `json:"name"`
			Concepts   int    `json:"concepts"`
			Purged     int    `json:"purged"`
			Candidates []struct {
				ID     string           `json:"id"`
				Extent []string         `json:"extent"`
				Intent []string         `json:"intent"`
				Tags   []map[string]any `json:"tags"`
			} `json:"candidates"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	assert.Equal(t, "reverse", out.Relation)
	require.Len(t, out.Sections, 1)
	s := out.Sections[0]
	assert.Equal(t, 3, s.Concepts)
	assert.Equal(t, 1, s.Purged)
	require.Len(t, s.Candidates, 1)
	c := s.Candidates[0]
	assert.Equal(t, "C2", c.ID)
	assert.Equal(t, []string{"p.Engine", "p.Pump", "p.Worker"}, c.Extent)
	assert.Equal(t, []string{"Start() error", "Stop() error"}, c.Intent)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, "FULL_EXTENT_FULL_BEHAVIOR_EXPLICIT_INTERFACE_IMPLEMENTATIONS", c.Tags[0]["kind"])
	assert.Equal(t, "p.Worker", c.Tags[0]["anchor"])
	assert.Equal(t, 1.0, c.Tags[0]["anchor_coverage"])
	assert.NotContains(t, c.Tags[0], "configuration_coverage")
	assert.NotContains(t, c.Tags[0], "related")
}

func TestContextLabelsAreSharedAndUnique(t *testing.T) {
	first, second := workersSection(t), workersSection(t)
	ctx := NewContext()
	r := &Report{Input: "x", Relation: relation.KindReverse, Sections: []Section{first, second}}

	text := render(t, FormatText, r, ctx)
	assert.Contains(t, text, "C2 [p.Engine")
	assert.Contains(t, text, "C5 [p.Engine")

	// A second rendering with the same context keeps the labels.
	mermaid := render(t, FormatMermaid, r, ctx)
	assert.Contains(t, mermaid, "class C2 featureStyle")
	assert.Contains(t, mermaid, "class C5 featureStyle")
	assert.Contains(t, mermaid, "subgraph S2")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "mermaid", "lattice", "JSON"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = Write(&bytes.Buffer{}, Format("svg"), &Report{}, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSanitizeSignature(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Recv() <-chan int", "Recv() chan int"},
		{"Send(chan<- int)", "Send(chan int)"},
		{"Put(interface{})", "Put(any)"},
		{"Set(map[string]struct{})", "Set(map[string]struct)"},
		{"Tag(\"x\")", "Tag(#quot;x#quot;)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeSignature(tt.in), tt.in)
	}
}
