// Package highlight classifies the byte ranges of a Go fragment by grammar
// category and renders them for terminals and HTML.
//
// A fragment is parsed as the first kind that accepts it:
//
//	res, err := highlight.ParseAs("map[string]pkg.Widget", highlight.Kinds())
//	// res.Kind == highlight.KindType
//
// Ranges of different categories nest and overlap freely. RenderHTML keeps
// the nesting as span elements; RenderANSI flattens it, letting the
// narrowest styled category win:
//
//	fmt.Println(highlight.RenderANSI(src, res.Ranges, highlight.DefaultTheme()))
package highlight
