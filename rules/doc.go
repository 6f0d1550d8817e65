// Package rules provides validator-function factories for the formgraph
// core: given a rule description (a pattern, a range, a comparison), each
// factory produces a typed formgraph.ValidatorFunc ready for registration.
//
// The core consumes these functions without knowing how they were built;
// any function with the right signature works, so this package is a
// convenience layer, not a requirement.
//
// # Architecture
//
// Each source file groups a family of factories for a specific domain
// (`string.go`, `numeric.go`, `collection.go`, `compare.go`). Every
// exported factory captures its rule parameters in a closure and returns a
// stateless validator function, so the package has no global state and the
// produced functions are safe for repeated sequential invocation.
//
// # Usage
//
//	b := formgraph.NewBuilder[Contact]()
//	err := formgraph.Member(b, "Title",
//	    rules.Matches(`^(Mr|Mrs|Ms|Dr|Prof)$`, "must be a known title"))
//	err = formgraph.Collection(b, "Entries",
//	    rules.SliceLenBetween[string](1, 3, "must have 1 to 3 entries"))
package rules
