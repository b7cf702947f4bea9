package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Worlds
// -----------------------------------------------------------------------------

// World is one game server with its own shop data endpoint.
type World struct {
	ID          int    `json:"id"`          // Server ID from list-gameservers
	DisplayName string `json:"displayName"` // Human readable name (e.g., "Terra")
	APIURL      string `json:"apiURL"`      // Base URL for per-world endpoints
}

func (w World) String() string {
	return fmt.Sprintf("%d\t%s\t%s", w.ID, w.DisplayName, w.APIURL)
}

// -----------------------------------------------------------------------------
// Items
// -----------------------------------------------------------------------------

// ItemID identifies a tradeable item kind. Values come from the game's item
// catalog and are never decoded from shop data.
type ItemID int

// ListingSide selects which side of the shop data to request.
type ListingSide int

const (
	Sell ListingSide = iota // Shops selling the item (request baskets)
	Buy                     // Shops buying the item (request stands)
)

// PathSegment returns the shopping endpoint segment for the side.
func (s ListingSide) PathSegment() string {
	if s == Buy {
		return "B"
	}
	return "S"
}

func (s ListingSide) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// ParseListingSide parses "sell", "s", "buy" or "b" (case-insensitive).
func ParseListingSide(s string) (ListingSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sell", "s":
		return Sell, nil
	case "buy", "b":
		return Buy, nil
	}
	return Sell, fmt.Errorf("unknown listing side %q", s)
}

// -----------------------------------------------------------------------------
// Listings
// -----------------------------------------------------------------------------

// Position is a block coordinate inside a world.
type Position struct {
	X int16
	Y uint8
	Z int16
}

func (p Position) String() string {
	return fmt.Sprintf("<%d, %d, %d>", p.X, p.Y, p.Z)
}

// ShopListing is one shop's buy or sell offer for an item.
type ShopListing struct {
	GuildTag   string   // Owning guild tag, may be empty
	ShopName   string   // Shop display name
	ItemID     ItemID   // Stamped from the request, not from the wire
	Quantity   uint32   // Units offered
	PriceUnits int64    // Raw price (two implied decimals)
	Price      float64  // PriceUnits / 100
	Position   Position // Shop location
	WorldID    int      // Stamped from the request, not from the wire
}

// PriceFromUnits converts raw price units to a display price.
func PriceFromUnits(units int64) float64 {
	return float64(units) / 100.0
}

// PriceDecimal returns the exact fixed-point price.
func (l ShopListing) PriceDecimal() decimal.Decimal {
	return decimal.New(l.PriceUnits, -2)
}

func (l ShopListing) String() string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%s\t%d\t%s",
		l.GuildTag,
		l.ShopName,
		l.ItemID,
		l.Quantity,
		l.PriceDecimal().StringFixed(2),
		l.WorldID,
		l.Position,
	)
}
