// Package market implements the shop market client.
//
// The client:
//   - Discovers worlds once via list-gameservers and caches them
//   - Builds one shopping URL per world for each listing query
//   - Gates every request through a single shared throttle
//   - Decodes each binary response into listings stamped with item and world
//
// Worlds are visited sequentially. The first failing world aborts the query.
package market
