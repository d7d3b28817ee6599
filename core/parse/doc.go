// Package parse recovers a campaign record from raw language-model output.
// Because models frequently wrap JSON in narrative prose, markdown code
// fences or schema-style envelopes, the package applies a layered recovery
// strategy: strict decoding, span location, automatic JSON repair, and
// field-level coercion, with schema validation before and after.
//
// Decoded JSON is held in a tagged intermediate representation ([Value]) and
// is only coerced into the typed record after it has been inspected; the
// intermediate values are never modified in place.
//
// The main entry point is [Parse], which reports its outcome as an explicit
// [Result] rather than an error.
package parse
