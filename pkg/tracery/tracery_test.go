package tracery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nickandperla.net/tracery/internal/store"
)

const pairGrammar = `{"origin":"#a# #a#","a":["x","y"]}`

func TestPlainTextIsUnchanged(t *testing.T) {
	g, err := New([]byte(`{"a":"b"}`))
	require.NoError(t, err)

	for _, in := range []string{"", "just words", "punctuation: yes, plenty!"} {
		assert.Equal(t, in, g.Resolve(in))
	}
}

func TestEscapedDelimitersStayLiteral(t *testing.T) {
	g, err := New([]byte(`{"a":"b"}`))
	require.NoError(t, err)

	assert.Equal(t, `\#a\#`, g.Resolve(`\#a\#`))
	assert.Equal(t, `\[x:y\]`, g.Resolve(`\[x:y\]`))
	assert.Equal(t, `\b`, g.Resolve(`\\#a#`))
}

func TestSaveScoping(t *testing.T) {
	g, err := New([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "v1 v2 v1", g.Resolve("[k:v1]#k# [k:v2]#k# [k:POP]#k#"))
	assert.Equal(t, "v k", g.Resolve("#[k:v]k# #k#"))
}

func TestUnbalancedBrackets(t *testing.T) {
	g, err := New([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "]]]", g.Resolve("[][]][][][[[]]][[]]]]"))
}

func TestUnknownSymbolFallback(t *testing.T) {
	g, err := New([]byte(`{"animal":["cat"]}`))
	require.NoError(t, err)

	assert.Equal(t, "unicorns", g.Resolve("#unicorns#"))
}

func TestResolveSeedIsDeterministic(t *testing.T) {
	g, err := New([]byte(`{"a":["p","q","r","s","t"]}`))
	require.NoError(t, err)

	text := strings.Repeat("#a#", 12)
	first := g.ResolveSeed(text, 7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.ResolveSeed(text, 7))
	}
}

func TestGenerateSeedRepeats(t *testing.T) {
	g, err := New([]byte(pairGrammar))
	require.NoError(t, err)

	first := g.GenerateSeed(42)
	parts := strings.Split(first, " ")
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.Contains(t, []string{"x", "y"}, p)
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.GenerateSeed(42))
	}

	other, err := New([]byte(pairGrammar), WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, first, other.Generate())
}

func TestWithRandom(t *testing.T) {
	g, err := New([]byte(pairGrammar), WithRandom(NewPCG(3)))
	require.NoError(t, err)
	h, err := New([]byte(pairGrammar), WithRandom(NewPCG(3)))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.Equal(t, g.Generate(), h.Generate())
	}
}

// countingSource counts draws and always picks the first alternative.
type countingSource struct{ draws int }

func (c *countingSource) Seed(uint64) {}

func (c *countingSource) Intn(n int) int {
	c.draws++
	return 0
}

func TestSingleAlternativeNeverDraws(t *testing.T) {
	src := &countingSource{}
	g, err := New([]byte(`{"origin":"#one# #arr# #two#","one":"a","arr":["b"],"two":["c","d"]}`), WithRandom(src))
	require.NoError(t, err)

	assert.Equal(t, "a b c", g.Generate())
	assert.Equal(t, 1, src.draws)
}

func TestModifiersOptionAndAdd(t *testing.T) {
	g, err := New([]byte(`{"animal":"cat"}`), WithModifiers(map[string]Modifier{
		"twice": func(s string) string { return s + s },
	}))
	require.NoError(t, err)
	assert.Equal(t, "Catcat", g.Resolve("#animal.twice.capitalize#"))

	g.AddModifier("bang", func(s string) string { return s + "!" })
	assert.Equal(t, "a cat!", g.Resolve("#animal.a.bang#"))
}

func TestWithMaxDepth(t *testing.T) {
	g, err := New([]byte(`{"loop":"<#loop#>"}`), WithMaxDepth(2))
	require.NoError(t, err)

	assert.Equal(t, "<<loop>>", g.Resolve("#loop#"))
}

func TestFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		source string
	}{
		{"json", JSON, `{"origin":"#who# waves","who":"she"}`},
		{"yaml", YAML, "origin: '#who# waves'\nwho:\n  - she\n"},
		{"hcl", HCL, "origin = \"#who# waves\"\nwho = [\"she\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New([]byte(tt.source), WithFormat(tt.format))
			require.NoError(t, err)
			assert.Equal(t, "she waves", g.Generate())
			assert.Equal(t, []string{"origin", "who"}, g.Symbols())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"empty":       ``,
		"not object":  `["a"]`,
		"empty rules": `{"a":[]}`,
		"bad rule":    `{"a":[1]}`,
		"bad json":    `{"a":`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New([]byte(src))
			require.ErrorIs(t, err, ErrLoad)
		})
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tale.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: [\"#x#\"]\nx: hi\n"), 0o644))

	g, err := NewFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", g.Generate())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[]`), 0o644))
	_, err = NewFromFile(bad)
	require.ErrorIs(t, err, ErrLoad)
	assert.Contains(t, err.Error(), bad)

	_, err = NewFromFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Put(ctx, &Entry{Name: "hcl", Format: "hcl", Source: `origin = "stored"`}))
	require.NoError(t, s.Put(ctx, &Entry{Name: "odd", Format: "toml", Source: `origin = "x"`}))

	g, err := FromStore(ctx, s, "hcl")
	require.NoError(t, err)
	assert.Equal(t, "stored", g.Generate())

	_, err = FromStore(ctx, s, "absent")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = FromStore(ctx, s, "odd")
	require.ErrorIs(t, err, ErrLoad)
}

func TestDefaultGrammar(t *testing.T) {
	g, err := Default(WithSeed(1))
	require.NoError(t, err)

	out := g.Generate()
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "[")
	assert.Contains(t, g.Symbols(), Origin)

	fromSource, err := New([]byte(DefaultGrammar), WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, g.Symbols(), fromSource.Symbols())
	assert.Equal(t, out, fromSource.Generate())
}

func TestRulesReturnsCopy(t *testing.T) {
	g, err := New([]byte(pairGrammar))
	require.NoError(t, err)

	rules, ok := g.Rules("a")
	require.True(t, ok)
	rules[0] = "changed"

	again, _ := g.Rules("a")
	assert.Equal(t, []string{"x", "y"}, again)

	_, ok = g.Rules("missing")
	assert.False(t, ok)
}

func TestConcurrentUse(t *testing.T) {
	g, err := New([]byte(pairGrammar))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				out := g.Resolve("[k:v]#a##k#")
				assert.True(t, out == "xv" || out == "yv", out)
			}
			g.GenerateSeed(seed)
		}(uint64(i))
	}
	wg.Wait()
}
