package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// compileBody lexes a brace-delimited body and compiles it with placeholder T
func compileBody(t *testing.T, body string) *Template {
	t.Helper()
	root := lexRoot(t, body)
	require.Len(t, root.Children, 1)
	require.True(t, root.Children[0].IsGroup(DelimBrace))
	return Compile("T", root.Children[0], zap.NewNop())
}

func TestCompiler_ImplicitMode(t *testing.T) {
	tmpl := compileBody(t, "{ impl Trait for T {} }")

	assert.False(t, tmpl.Explicit)
	assert.Equal(t, "T", tmpl.Placeholder)
	root, ok := tmpl.Root.(*RepeatTargetNode)
	require.True(t, ok)
	assert.True(t, root.Synthetic)
	require.Len(t, root.Children, 5)
	assert.Equal(t, NodeTypeOther, root.Children[0].Type())
	assert.Equal(t, NodeTypePlaceholder, root.Children[3].Type())
	assert.Equal(t, NodeTypeGroup, root.Children[4].Type())
	assert.False(t, ContainsRepeatTarget(root.Children))
}

func TestCompiler_ExplicitMode(t *testing.T) {
	tmpl := compileBody(t, "{ match x { #( T => 1, )* } }")

	assert.True(t, tmpl.Explicit)
	root, ok := tmpl.Root.(*GroupNode)
	require.True(t, ok)
	assert.True(t, root.Token.IsGroup(DelimNone))
	assert.True(t, ContainsRepeatTarget(root.Children))

	require.Len(t, root.Children, 3)
	inner, ok := root.Children[2].(*GroupNode)
	require.True(t, ok)
	require.Len(t, inner.Children, 1)
	rt, ok := inner.Children[0].(*RepeatTargetNode)
	require.True(t, ok)
	assert.False(t, rt.Synthetic)
	assert.True(t, rt.Pound.IsPunct(CharRepeatOpen))
	assert.True(t, rt.Star.IsPunct(CharRepeatClose))
	require.Len(t, rt.Children, 5)
	assert.Equal(t, NodeTypePlaceholder, rt.Children[0].Type())
}

func TestCompiler_IdentConcat(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		prefix string
		suffix string
		after  int // nodes following the concat node
	}{
		{"prefix only", "{ make_~T() }", "make_", "", 1},
		{"prefix and suffix", "{ make_~T~_new() }", "make_", "_new", 1},
		{"suffix not an ident", "{ make_~T~1 }", "make_", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := compileBody(t, tt.body)
			root := tmpl.Root.(*RepeatTargetNode)
			require.Len(t, root.Children, 1+tt.after)

			concat, ok := root.Children[0].(*IdentConcatNode)
			require.True(t, ok)
			assert.Equal(t, tt.prefix, concat.Prefix.Value)
			assert.Equal(t, "T", concat.Target.Value)
			assert.Equal(t, tt.suffix, concat.SuffixText())
		})
	}
}

func TestCompiler_LookaheadFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		types []NodeType
	}{
		{
			name:  "tilde without placeholder",
			body:  "{ a~b }",
			types: []NodeType{NodeTypeOther, NodeTypeOther, NodeTypeOther},
		},
		{
			name:  "pound without star",
			body:  "{ #(T) }",
			types: []NodeType{NodeTypeOther, NodeTypeGroup},
		},
		{
			name:  "pound with bracket group",
			body:  "{ #[T]* }",
			types: []NodeType{NodeTypeOther, NodeTypeGroup, NodeTypeOther},
		},
		{
			name:  "trailing pound",
			body:  "{ x # }",
			types: []NodeType{NodeTypeOther, NodeTypeOther},
		},
		{
			name:  "placeholder before tilde",
			body:  "{ T~x }",
			types: []NodeType{NodeTypePlaceholder, NodeTypeOther, NodeTypeOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := compileBody(t, tt.body)
			assert.False(t, tmpl.Explicit)
			root := tmpl.Root.(*RepeatTargetNode)
			require.Len(t, root.Children, len(tt.types))
			for i, n := range root.Children {
				assert.Equal(t, tt.types[i], n.Type(), "node %d", i)
			}
		})
	}
}

func TestCompiler_NestedTargetsStayExplicit(t *testing.T) {
	tmpl := compileBody(t, "{ #( a #( T )* )* }")
	assert.True(t, tmpl.Explicit)

	root := tmpl.Root.(*GroupNode)
	require.Len(t, root.Children, 1)
	outer := root.Children[0].(*RepeatTargetNode)
	require.Len(t, outer.Children, 2)
	_, ok := outer.Children[1].(*RepeatTargetNode)
	assert.True(t, ok)
}

func TestCompiler_PlaceholderInsideGroup(t *testing.T) {
	tmpl := compileBody(t, "{ f(T, [T]) }")
	dump := tmpl.Dump()
	assert.Contains(t, dump, "RepeatTargetNode{implicit")
	assert.Contains(t, dump, "PlaceholderNode{T")
	assert.Contains(t, dump, "GroupNode{()")
	assert.Contains(t, dump, "GroupNode{[]")
}

func TestCompiler_Reuse(t *testing.T) {
	c := NewCompiler("T", nil)
	first := lexRoot(t, "{ #( T )* }").Children[0]
	second := lexRoot(t, "{ T }").Children[0]

	assert.True(t, c.Compile(first).Explicit)
	assert.False(t, c.Compile(second).Explicit)
}
