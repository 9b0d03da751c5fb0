package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nickandperla.net/tracery/internal/store"
)

// run executes the CLI in-process with the given stdin.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeGrammar(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "pair.json", `{"origin":"#a# #a#","a":["x","y"]}`)

	first, _, err := run(t, "", "generate", "-f", path, "--seed", "5", "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Regexp(t, `^[xy] [xy]$`, l)
	}

	again, _, err := run(t, "", "generate", "-f", path, "--seed", "5", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGenerateDefaultGrammar(t *testing.T) {
	out, _, err := run(t, "", "generate", "--seed", "1")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
	assert.NotContains(t, out, "#")
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeGrammar(t, dir, "bad.yaml", "- not\n- an object\n")

	_, _, err := run(t, "", "generate", "-f", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root is not an object")

	_, _, err = run(t, "", "generate", "-n", "0")
	assert.Error(t, err)

	_, _, err = run(t, "", "generate", "-f", bad, "-g", "x")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "g.hcl", "animal = \"owl\"\n")

	out, _, err := run(t, "", "resolve", "-f", path, "[pet:#animal#]#pet.a# and #pet.s#")
	require.NoError(t, err)
	assert.Equal(t, "an owl and owls\n", out)

	out, _, err = run(t, "", "resolve", "-f", path, "#unicorns#", `\#animal\#`)
	require.NoError(t, err)
	assert.Equal(t, "unicorns \\#animal\\#\n", out)

	_, _, err = run(t, "", "resolve")
	assert.Error(t, err)
}

func TestGrammarLibrary(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "lib.db")
	path := writeGrammar(t, dir, "tale.yaml", "origin: 'a #thing#'\nthing: [stone]\n")
	lib := []string{"--store", "sqlite", "--db", db}

	out, _, err := run(t, "", append([]string{"grammar", "put", "tale", path}, lib...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tale "))

	out, _, err = run(t, "", append([]string{"grammar", "list"}, lib...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "tale")
	assert.Contains(t, out, "yaml")

	out, _, err = run(t, "", append([]string{"grammar", "get", "tale"}, lib...)...)
	require.NoError(t, err)
	assert.Equal(t, "origin: 'a #thing#'\nthing: [stone]\n", out)

	out, _, err = run(t, "", append([]string{"generate", "-g", "tale"}, lib...)...)
	require.NoError(t, err)
	assert.Equal(t, "a stone\n", out)

	_, _, err = run(t, "", append([]string{"grammar", "delete", "tale"}, lib...)...)
	require.NoError(t, err)

	_, _, err = run(t, "", append([]string{"grammar", "get", "tale"}, lib...)...)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = run(t, "", append([]string{"grammar", "delete", "tale"}, lib...)...)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGrammarPutRejectsBadSource(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "lib.db")
	path := writeGrammar(t, dir, "broken.json", `{"a":[]}`)

	_, _, err := run(t, "", "grammar", "put", "broken", path, "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no rules")

	_, _, err = run(t, "", "grammar", "put", "broken", path, "--db", db, "--format", "toml")
	assert.Error(t, err)
}

func TestREPLBasicMode(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "g.json", `{"origin":"hi","color":["red","blue"]}`)

	input := strings.Join([]string{
		":symbols",
		"[c:green]#c# #origin.capitalize#",
		":seed 3",
		"#color#",
		":seed nope",
		"",
		":quit",
		"never reached",
	}, "\n") + "\n"

	out, _, err := run(t, input, "repl", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "tracery REPL")
	assert.Contains(t, out, "color origin\n")
	assert.Contains(t, out, "green Hi\n")
	assert.Contains(t, out, `Error: bad seed "nope"`)
	assert.NotContains(t, out, "never reached")
	assert.True(t, strings.Contains(out, "red\n") || strings.Contains(out, "blue\n"))
}

func TestREPLEndsOnEOF(t *testing.T) {
	out, _, err := run(t, "#unknown#", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "unknown\n")
}

func TestReadLineRaw(t *testing.T) {
	var echo bytes.Buffer

	// "abd", left, insert c, end, Enter
	line, eof := readLineRaw(strings.NewReader("abd\x1b[Dc\x05\r"), &echo)
	assert.False(t, eof)
	assert.Equal(t, "abcd", line)

	line, eof = readLineRaw(strings.NewReader("xy\x7fz\r"), &echo)
	assert.False(t, eof)
	assert.Equal(t, "xz", line)

	line, eof = readLineRaw(strings.NewReader("héllo\r"), &echo)
	assert.False(t, eof)
	assert.Equal(t, "héllo", line)

	_, eof = readLineRaw(strings.NewReader("\x04"), &echo)
	assert.True(t, eof)
}

func TestLogLevelFlag(t *testing.T) {
	_, errOut, err := run(t, "", "resolve", "--log-level", "debug", "#ghost#")
	require.NoError(t, err)
	assert.Contains(t, errOut, "unknown symbol")

	_, errOut, err = run(t, "", "resolve", "--log-level", "error", "#ghost#")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}
