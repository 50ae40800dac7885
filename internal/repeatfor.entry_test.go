package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeEntry_FinalSegment(t *testing.T) {
	tests := []struct {
		input   string
		segment string
		ok      bool
	}{
		{"int", "int", true},
		{"pkg.Widget", "Widget", true},
		{"List[string]", "List", true},
		{"pkg.Pair[int, string]", "Pair", true},
		{"*Widget", "", false},
		{"[]int", "", false},
		{"map[string]int", "", false},
		{"chan int", "", false},
		{"func(int) error", "", false},
		{"struct{}", "", false},
		{"interface{ Close() error }", "", false},
		{"(int)", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			entries := mustEntries(t, tt.input)
			require.Len(t, entries, 1)
			segment, ok := entries[0].FinalSegment()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.segment, segment)
			assert.Equal(t, tt.input, entries[0].String())
		})
	}
}

func TestTypeEntry_TokensAreCopies(t *testing.T) {
	entries := mustEntries(t, "pkg.Widget")
	require.Len(t, entries, 1)

	first := entries[0].Tokens()
	require.Len(t, first, 3)
	first[0].Value = "changed"

	second := entries[0].Tokens()
	assert.Equal(t, "pkg", second[0].Value)
}

func TestTypeEntry_Pos(t *testing.T) {
	entries := mustEntries(t, "int,  bool")
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Pos().Column)
	assert.Equal(t, 8, entries[1].Pos().Column)
}

func TestParseTypeEntry_Empty(t *testing.T) {
	_, err := ParseTypeEntry(nil, Position{Line: 3, Column: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgEmptyEntry)
	assert.Equal(t, "3", metadataOf(t, err, MetaKeyLine))
	assert.Equal(t, "4", metadataOf(t, err, MetaKeyColumn))
}
