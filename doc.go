// Package formgraph is a dynamic validation dispatch and object-graph
// traversal engine for form models.
//
// Given an arbitrary, possibly cyclic object graph and a registry of typed
// validation functions keyed by dotted structural path, formgraph resolves
// which validator applies to which field regardless of nesting depth or
// collection membership, invokes each validator with the correct isolated
// value while keeping the heterogeneously-typed registry statically safe,
// walks the graph with identity-based cycle protection, and reports
// per-field failures to a field-addressable message sink.
//
// Key Features:
//
//   - Type-safe validator registration using generics, with checked
//     type recovery at the call site
//   - Immutable path-keyed registry built once, shared by many runs
//   - Cycle-safe recursive traversal of live model graphs
//   - Two-level protocol: single-field validation on change, whole-model
//     validation on submit
//   - Failure accumulation, never short-circuiting, with deterministic
//     emission order
//
// Basic Usage:
//
//	type Contact struct {
//		Title   string
//		Entries []string
//	}
//
//	b := formgraph.NewBuilder[Contact]()
//	_ = formgraph.Member(b, "Title", rules.Matches(`^(Mr|Mrs|Ms|Dr|Prof)$`, "invalid title"))
//	_ = formgraph.Collection(b, "Entries", rules.SliceLenBetween[string](1, 3, "must have 1 to 3 entries"))
//	reg, err := b.Build()
//	if err != nil {
//		// registration drift is caught at build time
//	}
//
//	model := &Contact{Title: "Dr", Entries: []string{"a"}}
//	v, err := formgraph.New(model, reg)
//	if err != nil {
//		// nil model or empty registry fails fast
//	}
//
//	ok, err := v.Validate(ctx)            // whole model, on submit
//	ok, err = v.OnFieldChanged(ctx, model, "Title") // single field, on change
//	msgs := v.Sink().Get(formgraph.FieldRef{Owner: model, Field: "Title"})
//
// Nested models are validated by attaching a sub-registry built for the
// nested type under the parent member name; every sub-key is re-rooted at
// the member name at attach time:
//
//	ab := formgraph.NewBuilder[Address]()
//	_ = formgraph.Member(ab, "Line1", rules.Required("required"))
//	addr, _ := ab.Build()
//	_ = formgraph.Nested(b, "Address", addr)
//
// Error Handling:
//
// Ordinary validation failures are data, not errors: they accumulate into
// Failures and flow to the message sink. Errors are reserved for fatal
// conditions - nil model, empty registry, registry/model drift, or a failed
// typed recovery - and are never degraded into a passing result.
package formgraph
