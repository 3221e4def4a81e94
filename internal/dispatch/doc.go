// Package dispatch runs translation requests off the UI thread. Each request
// gets its own goroutine; its result travels back over a channel and the
// completion callback is posted to the UI loop.
package dispatch
