// Package poller implements the Listing Poller component.
//
// The Listing Poller:
//   - Sweeps a watch list of items on a fixed interval (default 15 minutes)
//   - Visits items, sides and worlds sequentially through one market client
//   - Logs per-item failures and continues with the next item
//   - Hands every fetched batch to a ListingHandler
package poller
