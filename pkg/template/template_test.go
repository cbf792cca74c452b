package template_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bodygen/pkg/template"
)

// snapshot flattens a document into something cmp can diff.
func snapshot(d *template.Document) map[string][]template.Entry {
	out := make(map[string][]template.Entry, d.Len())
	for _, k := range d.Keys() {
		out[k] = d.Entries(k)
	}
	return out
}

func TestParse_SingleRule(t *testing.T) {
	doc, err := template.Parse("#morphs=pluginA.esm\nPreset1=BigButt@0.5\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"pluginA.esm"}, doc.Keys())
	assert.Equal(t, []template.Entry{{Name: "Preset1", Value: "BigButt@0.5"}}, doc.Entries("pluginA.esm"))

	out := template.Format(doc)
	assert.Equal(t, "pluginA.esm=Preset1", out.Morphs)
	assert.Equal(t, "#morphs=pluginA.esm\n\nPreset1=BigButt@0.5", out.Templates)
}

func TestParse_IgnoredLines(t *testing.T) {
	text := `
Orphan=ignored@1
# a comment
   #morphs=  pluginA.esm
no equals sign here
Preset1 = BigButt@0.5
=missingname
Empty=

# another comment
Preset2=Waist@-0.2
`
	doc, err := template.Parse(text)
	require.NoError(t, err)

	want := map[string][]template.Entry{
		"pluginA.esm": {
			{Name: "Preset1", Value: "BigButt@0.5"},
			{Name: "Preset2", Value: "Waist@-0.2"},
		},
	}
	if diff := cmp.Diff(want, snapshot(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RepeatedKeyAppends(t *testing.T) {
	text := "#morphs=a.esm\nP1=x@1\n#morphs=b.esm\nP2=y@1\n#morphs=a.esm\nP3=z@1\n"
	doc, err := template.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.esm", "b.esm"}, doc.Keys())
	assert.Equal(t, []template.Entry{{Name: "P1", Value: "x@1"}, {Name: "P3", Value: "z@1"}}, doc.Entries("a.esm"))
}

func TestParse_DirectiveWithoutEntries(t *testing.T) {
	doc, err := template.Parse("#morphs=a.esm\n")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, template.Output{}, template.Format(doc))
}

func TestParse_Errors(t *testing.T) {
	t.Run("no directive", func(t *testing.T) {
		_, err := template.Parse("Preset1=BigButt@0.5\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, template.ErrNoMorphsDirective)
		assert.Equal(t, "no morphs setting found in templates.ini", err.Error())
	})

	t.Run("empty directive", func(t *testing.T) {
		_, err := template.Parse("#morphs=a.esm\nP=x@1\n\n#morphs=   \nQ=y@1\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, template.ErrEmptyMorphsValue)

		var ge *template.GrammarError
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, 4, ge.Line)
		assert.Equal(t, "morphs setting is empty in templates.ini:4", err.Error())
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, template.Validate("#morphs=a.esm\n"))
	assert.ErrorIs(t, template.Validate(""), template.ErrNoMorphsDirective)
	assert.ErrorIs(t, template.Validate("# just a comment\nP=x@1"), template.ErrNoMorphsDirective)

	err := template.Validate("\n#morphs=\n")
	var ge *template.GrammarError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, 2, ge.Line)
}

func TestFormat_FanOut(t *testing.T) {
	doc, err := template.Parse("#morphs=pluginA.esm; pluginB.esm;\nP1=BigButt@0.5\nP2=Waist@-0.2\n#morphs=pluginC.esp\nP3=Breasts@1\n")
	require.NoError(t, err)

	out := template.Format(doc)
	assert.Equal(t, "pluginA.esm=P1|P2\n\npluginB.esm=P1|P2\n\npluginC.esp=P3", out.Morphs)
	assert.Equal(t,
		"#morphs=pluginA.esm; pluginB.esm;\n\nP1=BigButt@0.5\n\nP2=Waist@-0.2\n\n\n#morphs=pluginC.esp\n\nP3=Breasts@1",
		out.Templates)
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"#morphs=pluginA.esm\nPreset1=BigButt@0.5\n",
		"junk\n#morphs=a;b\nP1=x@1,y@-0.5\n# c\nP2=z@0\n#morphs=c.esp\nP3=w@0.25\n#morphs=a;b\nP4=q@1\n",
		"#morphs=only.esm\n",
	}
	for _, in := range inputs {
		first, err := template.Parse(in)
		require.NoError(t, err)

		out := template.Format(first)
		if out.Templates == "" {
			continue
		}
		second, err := template.Parse(out.Templates)
		require.NoError(t, err)

		assert.True(t, first.Equal(second))
		if diff := cmp.Diff(snapshot(first), snapshot(second)); diff != "" {
			t.Errorf("round trip mismatch (-first +second):\n%s", diff)
		}
		assert.Equal(t, out, template.Format(second))
	}
}

func TestFromGroups(t *testing.T) {
	doc := template.FromGroups([]template.RuleGroup{
		{Rules: []string{"a.esm", "b.esm"}, Presets: []template.Named{{Name: "Curvy", Descriptor: "BigButt@1"}, {Name: "Slim", Descriptor: "Waist@-1"}}},
		{Rules: nil, Presets: []template.Named{{Name: "Lost", Descriptor: "x@1"}}},
		{Rules: []string{"c.esp"}, Presets: []template.Named{{Name: "Athletic", Descriptor: "Arms@0.5"}}},
	})

	assert.Equal(t, []string{"a.esm;b.esm", "c.esp"}, doc.Keys())
	out := template.Format(doc)
	assert.Equal(t, "a.esm=Curvy|Slim\n\nb.esm=Curvy|Slim\n\nc.esp=Athletic", out.Morphs)
}

func TestAtomicRules(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, template.AtomicRules(" a ;; b ;"))
	assert.Empty(t, template.AtomicRules(";"))
}

func TestDocument_CopiesAreIndependent(t *testing.T) {
	var d template.Document
	d.Append("k", "n", "v")

	keys := d.Keys()
	keys[0] = "mutated"
	entries := d.Entries("k")
	entries[0].Name = "mutated"

	assert.Equal(t, []string{"k"}, d.Keys())
	assert.Equal(t, "n", d.Entries("k")[0].Name)
}
