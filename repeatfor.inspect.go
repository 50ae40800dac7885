package repeatfor

import (
	"context"

	"github.com/itsatony/go-repeatfor/internal"
)

// Inspection describes how an invocation was understood without rendering it
type Inspection struct {
	Placeholder   string           `json:"placeholder"`
	Entries       []InspectedEntry `json:"entries"`
	Mode          string           `json:"mode"` // "explicit" or "implicit"
	RepeatTargets int              `json:"repeat_targets"`
	Placeholders  int              `json:"placeholders"`
	IdentConcats  int              `json:"ident_concats"`
	Tree          string           `json:"tree"`
}

// InspectedEntry is one substitution entry of an inspected invocation
type InspectedEntry struct {
	Text         string `json:"text"`
	FinalSegment string `json:"final_segment,omitempty"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
}

// Explicit reports whether the body contained at least one repeat-target marker
func (i *Inspection) Explicit() bool {
	return i.Mode == ModeNameExplicit
}

// Inspect parses and compiles an invocation and reports its structure.
// Structural errors are returned as from Expand; render-time errors such as
// a misplaced placeholder are not detected.
func (e *Engine) Inspect(ctx context.Context, invocation string) (*Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := internal.NewLexer(invocation, e.logger).Tokenize()
	if err != nil {
		return nil, err
	}
	inv, err := internal.ParseInvocation(root.Children, root.End, e.logger)
	if err != nil {
		return nil, err
	}
	tmpl := internal.NewCompiler(inv.Placeholder.Value, e.logger).Compile(inv.Body)

	result := &Inspection{
		Placeholder: inv.Placeholder.Value,
		Entries:     make([]InspectedEntry, 0, len(inv.Entries)),
		Mode:        ModeNameImplicit,
		Tree:        tmpl.Dump(),
	}
	if tmpl.Explicit {
		result.Mode = ModeNameExplicit
	}

	for _, entry := range inv.Entries {
		segment, _ := entry.FinalSegment()
		pos := entry.Pos()
		result.Entries = append(result.Entries, InspectedEntry{
			Text:         entry.String(),
			FinalSegment: segment,
			Line:         pos.Line,
			Column:       pos.Column,
		})
	}

	internal.Walk(tmpl.Root, func(n internal.Node) {
		switch x := n.(type) {
		case *internal.RepeatTargetNode:
			if !x.Synthetic {
				result.RepeatTargets++
			}
		case *internal.PlaceholderNode:
			result.Placeholders++
		case *internal.IdentConcatNode:
			result.IdentConcats++
		}
	})

	return result, nil
}
