// Package repeatfor expands a Go template once per type in a list.
//
// An invocation names a placeholder, a list of type expressions and a body:
//
//	for T in [int, pkg.Widget, List[string]] {
//	    func zero~T() T { var z T; return z }
//	}
//
// The body is repeated once per entry with every T replaced by the entry,
// and `prefix~T~suffix` glued into one identifier using the entry's final
// name segment (Widget for pkg.Widget, List for List[string]).
//
// # Basic Usage
//
//	engine := repeatfor.MustNew()
//	out, err := engine.Expand(ctx, "for T in [u32, i32] { impl Trait for T {} }")
//	// out: "impl Trait for u32 {} impl Trait for i32 {}"
//
// # Repeat Targets
//
// Without markers the whole body repeats. Wrapping part of the body in
// #( ... )* repeats only that part and emits the rest once:
//
//	for T in [A, B] { match x { #( T => 1, )* } }
//	// match x { A => 1, B => 1, }
//
// A placeholder outside every repeat target is an error of kind
// misplaced_placeholder.
//
// # Source Files
//
// ExpandSource finds every `repeatfor!( ... )` call in a file, splices the
// expansion over it and runs go/format on the result:
//
//	result, err := engine.ExpandSource(ctx, "widgets.go", src)
//	os.WriteFile("widgets_gen.go", []byte(result.Output), 0o644)
//
// Calls produced by an expansion are expanded on the next pass, up to
// WithMaxDepth passes.
//
// # Error Handling
//
// Errors carry a kind and a source position as metadata:
//
//	if _, err := engine.Expand(ctx, src); err != nil {
//	    kind := repeatfor.KindOf(err)
//	    pos, ok := repeatfor.PositionOf(err)
//	}
//
// # Configuration
//
// Customize the engine with functional options or a .repeatfor.yaml file:
//
//	engine, _ := repeatfor.New(
//	    repeatfor.WithMacroName("gen"),
//	    repeatfor.WithHeader(repeatfor.DefaultHeader),
//	    repeatfor.WithLogger(logger),
//	)
//
// # Expansion Stores
//
// WithStore caches ExpandSource results. Stores are opened by driver name:
// "memory", "filesystem" or "postgres".
//
//	store, _ := repeatfor.OpenStore("filesystem", ".repeatfor-cache")
//	engine := repeatfor.MustNew(repeatfor.WithStore(store))
package repeatfor
