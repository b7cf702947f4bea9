// Package api provides the HTTP transport for the Boundless data API.
//
// Endpoints:
//   - Game servers: {base}/list-gameservers (JSON array)
//   - Shop data:    {world api url}/shopping/{S|B}/{item id} (binary, see package listing)
//
// Every request carries the Boundless-API-Key header.
package api
