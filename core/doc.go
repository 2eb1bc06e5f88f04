// Package core provides the Petrel SDK's shared kernel: the Builder
// contract, validation and provider error types, configuration, secret
// handling, retry policies, and telemetry hooks.
//
// Request builders live in the builders package; the HTTP client facade
// lives in the root petrel package. Nothing in core performs I/O.
package core
