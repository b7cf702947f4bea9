// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - HTTP requests by endpoint and status, with latency
//   - Listings decoded per world and side
//   - Time spent waiting on the request throttle
//   - Size of the cached world list
package metrics
