package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFile(t *testing.T, fsys fstest.MapFS, name string, opts ...Option) (*Program, *Source) {
	t.Helper()
	data, ok := fsys[name]
	require.True(t, ok, "missing %s", name)
	opts = append([]Option{WithFS(fsys), WithURL(name)}, opts...)
	return Parse(string(data.Data), opts...)
}

func TestInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"main.as":     {Data: []byte("include \"lib/util.as\"\nvar y = 1")},
		"lib/util.as": {Data: []byte("var x = ;")},
	}
	program, src := parseFile(t, fsys, "main.as")

	require.Len(t, src.Included, 1)
	child := src.Included[0]
	assert.Equal(t, "lib/util.as", child.URL)
	assert.Same(t, src, child.Parent)
	assert.Same(t, src, child.Root())

	require.Len(t, src.Diagnostics, 1)
	assert.Same(t, child, src.Diagnostics[0].Source)
	assert.Equal(t, ErrExpectingBefore, src.Diagnostics[0].Code)
	assert.True(t, src.Invalidated())
	assert.True(t, child.Invalidated())
	assert.True(t, strings.HasPrefix(src.Diagnostics[0].Error(), "lib/util.as:1:9: syntax error: "))

	require.Len(t, program.Directives, 2)
	inc := program.Directives[0].(*IncludeDirective)
	assert.Equal(t, "lib/util.as", inc.Path)
	assert.Same(t, child, inc.Source)
	assert.Empty(t, inc.Directives)
	assert.IsType(t, &VariableDefinition{}, program.Directives[1])
}

func TestIncludeDirectives(t *testing.T) {
	fsys := fstest.MapFS{
		"src/main.as":   {Data: []byte("include \"defs.as\"\ntrace(A)")},
		"src/defs.as":   {Data: []byte("const A = 1\nfunction f() {}")},
		"src/nested.as": {Data: []byte("include \"../src/defs.as\"")},
	}

	program, src := parseFile(t, fsys, "src/main.as")
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)
	inc := program.Directives[0].(*IncludeDirective)
	assert.Equal(t, "src/defs.as", inc.Source.URL)
	require.Len(t, inc.Directives, 2)
	assert.Equal(t, `(IncludeDirective "defs.as" (VariableDefinition const (VariableBinding (NamePattern A) (NumberLiteral 1))) (FunctionDefinition f (FunctionCommon (Block))))`, Sexpr(inc))

	_, nested := parseFile(t, fsys, "src/nested.as")
	require.Empty(t, nested.Diagnostics)
	require.Len(t, nested.Included, 1)
	assert.Equal(t, "src/defs.as", nested.Included[0].URL)
}

func TestIncludeWarnings(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		opts    []Option
		code    ErrorCode
		message string
	}{
		{
			name:    "missing file",
			files:   fstest.MapFS{"main.as": {Data: []byte(`include "missing.as"`)}},
			code:    ErrCouldNotReadInclude,
			message: `could not read include "missing.as": `,
		},
		{
			name:    "self include",
			files:   fstest.MapFS{"main.as": {Data: []byte(`include "main.as"`)}},
			code:    ErrCircularInclude,
			message: `circular include "main.as"`,
		},
		{
			name: "cycle",
			files: fstest.MapFS{
				"main.as":  {Data: []byte(`include "other.as"`)},
				"other.as": {Data: []byte(`include "main.as"`)},
			},
			code:    ErrCircularInclude,
			message: `circular include "main.as"`,
		},
		{
			name: "too deep",
			files: fstest.MapFS{
				"main.as": {Data: []byte(`include "b.as"`)},
				"b.as":    {Data: []byte(`include "c.as"`)},
				"c.as":    {Data: []byte(`var c`)},
			},
			opts:    []Option{WithMaxIncludeDepth(1)},
			code:    ErrIncludeTooDeep,
			message: `include "c.as" nested deeper than 1 levels`,
		},
		{
			name:    "escapes root",
			files:   fstest.MapFS{"main.as": {Data: []byte(`include "../outside.as"`)}},
			code:    ErrCouldNotResolveInclude,
			message: `could not resolve include "../outside.as"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, src := parseFile(t, tt.files, "main.as", tt.opts...)
			require.Len(t, src.Diagnostics, 1)
			d := src.Diagnostics[0]
			assert.Equal(t, tt.code, d.Code)
			assert.True(t, d.IsWarning())
			assert.True(t, strings.HasPrefix(d.Message(), tt.message), "message %q", d.Message())
			assert.False(t, src.Invalidated())
			assert.NoError(t, src.Err())
		})
	}
}

func TestIncludeHostFileSystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.as"), []byte("var fromLib = 1"), 0o644))
	main := filepath.Join(dir, "main.as")
	require.NoError(t, os.WriteFile(main, []byte("include \"lib.as\"\nfromLib"), 0o644))

	f, err := os.Open(main)
	require.NoError(t, err)
	defer f.Close()

	program, src, err := ParseReader(f, WithURL(main))
	require.NoError(t, err)
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)
	require.Len(t, src.Included, 1)
	assert.Equal(t, filepath.Join(dir, "lib.as"), src.Included[0].URL)
	require.Len(t, program.Directives, 2)
}

func TestIncludeSnapshot(t *testing.T) {
	fsys := fstest.MapFS{"lib.as": {Data: []byte("var a")}}
	p := NewParser(NewSource("include \"lib.as\"", "main.as"), WithFS(fsys))
	p.start()

	st := p.Snapshot()
	_, err := p.parseInclude(newProgramContext())
	require.NoError(t, err)
	require.Len(t, p.source.Included, 1)

	p.Restore(st)
	assert.Empty(t, p.source.Included)
}
