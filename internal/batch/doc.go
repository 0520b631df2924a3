// Package batch drives a sequential download run over a source list.
//
// Run reads the list once, then for every URL in order reports a start, hands
// the URL to a Fetcher, reports the finish, and sleeps the configured delay.
// A failing item is logged and reported but never stops the run; only an
// unreadable list, an output directory that cannot be created, or context
// cancellation end it early. Results come back as a Summary for rendering.
package batch
