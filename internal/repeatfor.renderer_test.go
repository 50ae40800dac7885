package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderer_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "implicit impl per type",
			input:    "for T in [u32, i32] { impl Trait for T {} }",
			expected: " impl Trait for u32 {} impl Trait for i32 {}",
		},
		{
			name:     "explicit match arms",
			input:    "for T in [A, B, C] { match x { #( T => 1, )* } }",
			expected: " match x { A => 1, B => 1, C => 1, }",
		},
		{
			name:     "qualified entry keeps its path",
			input:    "for T in [ pkg.Widget ] { var _ T }",
			expected: " var _ pkg.Widget",
		},
		{
			name:     "generic entry",
			input:    "for T in [List[string]] { var _ T }",
			expected: " var _ List[string]",
		},
		{
			name:     "placeholder inside nested groups",
			input:    "for T in [int] { f(g([T])) }",
			expected: " f(g([int]))",
		},
		{
			name:     "layout and comments preserved",
			input:    "for T in [int] {\n\t// doc\n\tvar x T\n}",
			expected: "\n\t// doc\n\tvar x int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := expandSource(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRenderer_IdentSynthesis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "prefix only",
			input:    "for T in [pkg.Widget] { func make_~T() {} }",
			expected: " func make_Widget() {}",
		},
		{
			name:     "prefix and suffix",
			input:    "for T in [pkg.Widget] { func make_~T~_new() {} }",
			expected: " func make_Widget_new() {}",
		},
		{
			name:     "generic entry uses base name",
			input:    "for T in [Set[int]] { var is~T bool }",
			expected: " var isSet bool",
		},
		{
			name:     "one identifier per entry",
			input:    "for T in [A, B] { func new~T() T { return T{} } }",
			expected: " func newA() A { return A{} } func newB() B { return B{} }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := expandSource(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRenderer_SynthesizedIdentIsSingleToken(t *testing.T) {
	inv, err := parseSource(t, "for T in [pkg.Widget] { make_~T~_new }")
	require.NoError(t, err)
	tmpl := Compile("T", inv.Body, zap.NewNop())
	out, err := NewRenderer(zap.NewNop()).Render(tmpl, inv.Entries)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.True(t, out[0].IsIdent("make_Widget_new"))
	assert.Equal(t, inv.Body.Children[0].Pos, out[0].Pos)
}

func TestRenderer_InvalidShape(t *testing.T) {
	_, err := expandSource(t, "for T in [int, *Widget] { func new~T() {} }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidShape)
	assert.Equal(t, KindInvalidSubstitutionShape, metadataOf(t, err, MetaKeyKind))
	assert.Equal(t, "*Widget", metadataOf(t, err, MetaKeyEntry))
	assert.Equal(t, "32", metadataOf(t, err, MetaKeyColumn))
}

func TestRenderer_InvalidShapeOnlyForConcat(t *testing.T) {
	out, err := expandSource(t, "for T in [*Widget, []int] { var _ T }")
	require.NoError(t, err)
	assert.Equal(t, " var _ *Widget var _ []int", out)
}

func TestRenderer_NestedPassthrough(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inner markers kept and placeholder resolved",
			input:    "for T in [int] { #( a #( T )* )* }",
			expected: " a #( int )*",
		},
		{
			name:     "inner target not iterated again",
			input:    "for T in [A, B] { #( x #( T, T )* ; )* }",
			expected: " x #( A, A )* ; x #( B, B )* ;",
		},
		{
			name:     "doubly nested",
			input:    "for T in [A] { #( #( #( T )* )* )* }",
			expected: " #( #( A )* )*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := expandSource(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRenderer_MisplacedPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		node   string
		column string
	}{
		{"bare placeholder beside target", "for T in [int] { T #( T )* }", NodeTypeNamePlaceholder, "18"},
		{"placeholder in group beside target", "for T in [int] { f(T) #( T )* }", NodeTypeNamePlaceholder, "20"},
		{"concat beside target", "for T in [int] { new~T #( T )* }", NodeTypeNameIdentConcat, "18"},
		{"zero entries", "for T in [] { T #( T )* }", NodeTypeNamePlaceholder, "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expandSource(t, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), ErrMsgMisplacedPlaceholder)
			assert.Equal(t, KindMisplacedPlaceholder, metadataOf(t, err, MetaKeyKind))
			assert.Equal(t, tt.node, metadataOf(t, err, MetaKeyNode))
			assert.Equal(t, tt.column, metadataOf(t, err, MetaKeyColumn))
		})
	}
}

func TestRenderer_HandBuiltTreeRejectsTopLevelPlaceholder(t *testing.T) {
	pos := Position{Offset: 4, Line: 1, Column: 5}
	entries := mustEntries(t, "int")
	r := NewRenderer(zap.NewNop())

	t.Run("bare placeholder", func(t *testing.T) {
		_, err := r.RenderNode(&PlaceholderNode{Token: NewIdentToken("T", pos)}, entries)
		require.Error(t, err)
		assert.Equal(t, KindMisplacedPlaceholder, metadataOf(t, err, MetaKeyKind))
		assert.Equal(t, "5", metadataOf(t, err, MetaKeyColumn))
	})

	t.Run("placeholder inside group", func(t *testing.T) {
		group := &GroupNode{
			Token:    NewGroupToken(DelimParen, nil, Position{Line: 1, Column: 1}),
			Children: []Node{&PlaceholderNode{Token: NewIdentToken("T", pos)}},
		}
		_, err := r.RenderNode(group, entries)
		require.Error(t, err)
		assert.Equal(t, KindMisplacedPlaceholder, metadataOf(t, err, MetaKeyKind))
	})

	t.Run("with no entries", func(t *testing.T) {
		_, err := r.RenderNode(&PlaceholderNode{Token: NewIdentToken("T", pos)}, nil)
		require.Error(t, err)
		assert.Equal(t, KindMisplacedPlaceholder, metadataOf(t, err, MetaKeyKind))
	})

	t.Run("wrapped in a target renders", func(t *testing.T) {
		rt := &RepeatTargetNode{
			Children:  []Node{&PlaceholderNode{Token: NewIdentToken("T", pos)}},
			Synthetic: true,
		}
		out, err := r.RenderNode(rt, entries)
		require.NoError(t, err)
		assert.Equal(t, "int", Print(out))
	})
}

func TestRenderer_EntryCountLaw(t *testing.T) {
	all := []string{"A", "B", "C", "D", "E"}

	for n := 0; n <= len(all); n++ {
		list := strings.Join(all[:n], ", ")

		implicit, err := expandSource(t, "for T in ["+list+"] { x T; }")
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(implicit, ";"), "implicit with %d entries", n)

		explicit, err := expandSource(t, "for T in ["+list+"] { head #( x T; )* tail }")
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(explicit, ";"), "explicit with %d entries", n)
		assert.True(t, strings.HasPrefix(explicit, " head"))
		assert.True(t, strings.HasSuffix(explicit, " tail"))
	}
}

func TestRenderer_PrintedOutputRelexes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "bare placeholder",
			input:    "for T in [a, b] {T}",
			expected: []string{"a", "b"},
		},
		{
			name:     "explicit target without trivia",
			input:    "for T in [x, y, z] { #(T)* }",
			expected: []string{"x", "y", "z"},
		},
		{
			name:     "ident concat target",
			input:    "for T in [Foo, Bar] { #(new~T)* }",
			expected: []string{"newFoo", "newBar"},
		},
		{
			name:     "statement body",
			input:    "for T in [Foo, Bar] {var new~T int}",
			expected: []string{"var", "newFoo", "int", "var", "newBar", "int"},
		},
		{
			name:     "qualified entries",
			input:    "for T in [int, pkg.Widget] {T}",
			expected: []string{"int", "pkg", ".", "Widget"},
		},
		{
			name:     "number literals",
			input:    "for T in [A, B] {1}",
			expected: []string{"1", "1"},
		},
		{
			name:     "number before selector",
			input:    "for T in [A, B] { #(1)*.x }",
			expected: []string{"1", "1", ".", "x"},
		},
		{
			name:     "slashes stay operators",
			input:    "for T in [A, B] {/}",
			expected: []string{"/", "/"},
		},
		{
			name:     "nested passthrough",
			input:    "for T in [A, B] { #(T#(z)*)* }",
			expected: []string{"A", "#", "(", "z", ")", "*", "B", "#", "(", "z", ")", "*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := parseSource(t, tt.input)
			require.NoError(t, err)
			tmpl := Compile(inv.Placeholder.Value, inv.Body, zap.NewNop())
			out, err := NewRenderer(zap.NewNop()).Render(tmpl, inv.Entries)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokenTexts(out))

			relexed, err := Tokenize(Print(out), zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokenTexts(relexed))
		})
	}
}

func TestRenderer_EmptyEntriesExplicit(t *testing.T) {
	out, err := expandSource(t, "for T in [] { a #( T, )* b }")
	require.NoError(t, err)
	assert.Equal(t, " a b", out)

	out, err = expandSource(t, "for T in [] { T }")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderer_ImplicitWrapEquivalence(t *testing.T) {
	bodies := []string{
		"f(T)",
		"func new~T() T { return T{} }",
		"var _ = []T{}",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			implicit, err := expandSource(t, "for T in [int, pkg.Widget] { "+body+" }")
			require.NoError(t, err)
			explicit, err := expandSource(t, "for T in [int, pkg.Widget] { #( "+body+" )* }")
			require.NoError(t, err)
			assert.Equal(t, implicit, explicit)
		})
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	src := "for T in [A, B, pkg.C] { #( func is~T~_ok() T { return T{} } )* }"
	first, err := expandSource(t, src)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := expandSource(t, src)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderer_TemplateReusable(t *testing.T) {
	root := lexRoot(t, "{ var _ T }")
	tmpl := Compile("T", root.Children[0], zap.NewNop())
	r := NewRenderer(nil)

	first, err := r.Render(tmpl, mustEntries(t, "int"))
	require.NoError(t, err)
	second, err := r.Render(tmpl, mustEntries(t, "bool, string"))
	require.NoError(t, err)

	assert.Equal(t, " var _ int", Print(first))
	assert.Equal(t, " var _ bool var _ string", Print(second))
}

// foreignNode is a Node implementation the renderer does not know
type foreignNode struct{}

func (foreignNode) Type() NodeType { return NodeTypeOther }
func (foreignNode) Pos() Position { return Position{Line: 2, Column: 7} }
func (foreignNode) String() string { return "foreign" }

func TestRenderer_UnknownNode(t *testing.T) {
	_, err := NewRenderer(nil).RenderNode(foreignNode{}, nil)
	require.Error(t, err)
	assert.Equal(t, "2", metadataOf(t, err, MetaKeyLine))
}
