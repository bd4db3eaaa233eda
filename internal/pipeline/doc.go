// Package pipeline enriches validated rows with encoded features over a
// worker pool and returns them in input order.
//
// The only contract to implement is Encoder (Encode). Features is the
// production encoder; tests can swap in fakes.
package pipeline
