// Package throttle spaces outbound requests so that no request starts less
// than a minimum interval after the previous one finished.
//
// The Boundless API rate limits each key; a single shared gate per client is
// enough to stay under it. Spacing is measured from request completion, not
// issuance, so slow responses never let the next request start early.
package throttle
