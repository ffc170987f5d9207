// Package transform holds the transform registry and the executor that runs
// an ordered chain of named transforms over one directive's content.
//
// A directive such as
//
//	$inline("file:logo.svg|string|dataurl")
//
// reaches this package as an initial content value plus the requests
// [{string []} {dataurl []}]. Each request is resolved by name against a
// Registry and invoked with the shared read-only Context, the value produced by
// the previous stage and the request's arguments. Stages never run in
// parallel and values are not coerced to strings between stages.
package transform
