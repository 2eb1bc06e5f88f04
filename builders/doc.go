// Package builders provides fluent request builders for every OpenAI API
// family. Each builder accumulates fields through chained setters and defers
// all validation to Build, which either returns a wire-ready request struct
// or a validation error wrapping core.ErrInvalidRequest.
//
// Build never performs I/O. Builders are not safe for concurrent use; build
// one request per builder.
package builders
