// Package protocol defines the language-server boundary types the
// coordinate engine consumes: folding ranges, inlay hints, and diagnostics,
// plus the position/range primitives they share.
//
// Only the fields the engine needs are modeled. Payload decoding accepts
// raw JSON as delivered by a language server and tolerates absent optional
// fields, returning zero values in their place.
package protocol
