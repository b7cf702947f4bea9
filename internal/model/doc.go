// Package model defines shared data types used across the Boundless data client.
//
// Conventions:
//   - Prices: raw integer units with two implied decimal digits (250 = 2.50 coin)
//   - Positions: x/z signed 16-bit, y unsigned 8-bit (world block coordinates)
//   - IDs: int for worlds, ItemID for catalog items
package model
