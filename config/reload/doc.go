// Package reload runs a function on a fixed interval in a background goroutine
// whose lifetime is bound to an explicit cancellation signal.
//
// The first invocation happens one interval after Start, never immediately.
// A failed invocation is logged and the loop keeps ticking; a slow invocation
// only delays the next tick. Cancel stops the loop without waiting and is safe
// to call from inside the reload function itself; Stop additionally waits for
// the goroutine to exit.
package reload
