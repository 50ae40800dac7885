package highlight

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Theme assigns a terminal style to categories. Categories without a style
// are not painted.
type Theme map[Category]lipgloss.Style

// DefaultTheme returns the theme for the default renderer
func DefaultTheme() Theme {
	return NewTheme(lipgloss.DefaultRenderer())
}

// NewTheme builds the default styles on r, so the color profile of r
// decides which escape sequences are emitted.
func NewTheme(r *lipgloss.Renderer) Theme {
	style := func(color string) lipgloss.Style {
		return r.NewStyle().
			Foreground(lipgloss.Color(color)).
			TabWidth(lipgloss.NoTabConversion)
	}
	return Theme{
		CategoryType:    style(colorType),
		CategoryLabel:   style(colorLabel).Bold(true),
		CategoryLiteral: style(colorLiteral),
		CategoryComment: style(colorComment).Italic(true),
	}
}

// validRange reports whether r can be rendered over a source of n bytes
func validRange(r Range, n int) bool {
	return r.Start >= 0 && r.End > 0 && r.End <= n && r.Start < r.End
}

// RenderANSI paints src with theme. Each byte takes the style of the
// highest priority category covering it; lines are styled separately.
func RenderANSI(src string, ranges Ranges, theme Theme) string {
	paint := make([]int, len(src))
	for i := range paint {
		paint[i] = -1
	}
	for p, c := range allCategories {
		if _, ok := theme[c]; !ok {
			continue
		}
		for _, r := range ranges[c] {
			if !validRange(r, len(src)) {
				continue
			}
			for i := r.Start; i < r.End; i++ {
				paint[i] = p
			}
		}
	}

	var b strings.Builder
	start := 0
	flush := func(end int) {
		if start == end {
			return
		}
		text := src[start:end]
		if p := paint[start]; p >= 0 {
			text = theme[allCategories[p]].Render(text)
		}
		b.WriteString(text)
		start = end
	}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			flush(i)
			b.WriteByte('\n')
			start = i + 1
			continue
		}
		if i > start && paint[i] != paint[start] {
			flush(i)
		}
	}
	flush(len(src))
	return b.String()
}

type span struct {
	cat Category
	r   Range
}

// RenderHTML wraps every range in a span element. Spans nest: at each
// offset ended spans close before new ones open, and of the spans opening
// together the longer opens first. The class attribute lists the categories
// of every enclosing span, outermost first.
func RenderHTML(src string, ranges Ranges) string {
	var spans []span
	for _, c := range allCategories {
		for _, r := range ranges[c] {
			if validRange(r, len(src)) {
				spans = append(spans, span{cat: c, r: r})
			}
		}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.r.Start != b.r.Start {
			return a.r.Start < b.r.Start
		}
		if a.r.Len() != b.r.Len() {
			return a.r.Len() > b.r.Len()
		}
		return a.cat.priority() < b.cat.priority()
	})

	var b strings.Builder
	var stack []span
	next := 0
	for i := 0; i < len(src); {
		stack = closeSpans(&b, stack, i)
		for next < len(spans) && spans[next].r.Start <= i {
			s := spans[next]
			next++
			if s.r.End <= i {
				continue
			}
			stack = append(stack, s)
			openSpan(&b, stack)
		}
		_, size := utf8.DecodeRuneInString(src[i:])
		b.WriteString(html.EscapeString(src[i : i+size]))
		i += size
	}
	closeSpans(&b, stack, len(src))
	return b.String()
}

// openSpan writes the start tag of the top of stack
func openSpan(b *strings.Builder, stack []span) {
	classes := make([]string, len(stack))
	for i, s := range stack {
		classes[i] = string(s.cat)
	}
	fmt.Fprintf(b, htmlSpanOpen, stack[len(stack)-1].cat, strings.Join(classes, " "))
}

// closeSpans closes every span that ended at or before offset. Spans above
// an ended one that are still open are closed and opened again.
func closeSpans(b *strings.Builder, stack []span, offset int) []span {
	first := -1
	for i, s := range stack {
		if s.r.End <= offset {
			first = i
			break
		}
	}
	if first < 0 {
		return stack
	}

	var reopen []span
	for i := len(stack) - 1; i >= first; i-- {
		b.WriteString(htmlSpanClose)
		if stack[i].r.End > offset {
			reopen = append(reopen, stack[i])
		}
	}
	stack = stack[:first]
	for i := len(reopen) - 1; i >= 0; i-- {
		stack = append(stack, reopen[i])
		openSpan(b, stack)
	}
	return stack
}
