package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Catalog maps item names to item IDs. Names are matched case-insensitively.
type Catalog struct {
	byName map[string]ItemID
	byID   map[ItemID]string
}

// NewCatalog builds a catalog from a name -> id map.
func NewCatalog(items map[string]int) *Catalog {
	c := &Catalog{
		byName: make(map[string]ItemID, len(items)),
		byID:   make(map[ItemID]string, len(items)),
	}
	for name, id := range items {
		c.byName[strings.ToLower(name)] = ItemID(id)
		c.byID[ItemID(id)] = name
	}
	return c
}

// Resolve accepts either a catalog name or a numeric item ID.
func (c *Catalog) Resolve(s string) (ItemID, error) {
	s = strings.TrimSpace(s)
	if id, ok := c.byName[strings.ToLower(s)]; ok {
		return id, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown item %q", s)
	}
	return ItemID(n), nil
}

// Name returns the catalog name for id, or the decimal id if unknown.
func (c *Catalog) Name(id ItemID) string {
	if name, ok := c.byID[id]; ok {
		return name
	}
	return strconv.Itoa(int(id))
}

// Names returns all catalog names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byID))
	for _, name := range c.byID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.byID)
}
