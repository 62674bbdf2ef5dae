// Package batch probes multiple API keys read from a file, one per
// line. A circuit breaker stops the run early when the endpoint itself
// is unreachable, so a dead network does not cost one timeout per key.
package batch
