package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rickgao/boundless-data/internal/model"
)

// GameServersPath is the discovery endpoint relative to the API base URL.
const GameServersPath = "list-gameservers"

// WorldDiscoveryError reports an unreachable or unparseable world list.
type WorldDiscoveryError struct {
	URL string
	Err error
}

func (e *WorldDiscoveryError) Error() string {
	return fmt.Sprintf("world discovery from %s: %v", e.URL, e.Err)
}

func (e *WorldDiscoveryError) Unwrap() error {
	return e.Err
}

// ErrNotArray is returned when the world list is not a JSON array.
var ErrNotArray = errors.New("world list is not a json array")

// GameServersURL returns the discovery URL for base.
func GameServersURL(base string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + GameServersPath
}

// ShoppingURL returns the shop data URL for an item on one world.
func ShoppingURL(w model.World, side model.ListingSide, item model.ItemID) string {
	return fmt.Sprintf("%s/shopping/%s/%d", strings.TrimSuffix(w.APIURL, "/"), side.PathSegment(), item)
}

// ParseWorlds extracts id, displayName and apiURL from each object in a JSON
// array. Other fields are ignored. Missing or mistyped fields leave the zero
// value and are logged as warnings rather than failing the parse.
func ParseWorlds(data []byte, logger *slog.Logger) ([]model.World, error) {
	if logger == nil {
		logger = slog.Default()
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal world list: %w", err)
	}

	worlds := make([]model.World, 0, len(entries))
	for i, raw := range entries {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			logger.Warn("skipping non-object world entry", "index", i)
			continue
		}

		var w model.World
		var missing []string

		if v, ok := obj["id"]; !ok || !decodeInt(v, &w.ID) {
			missing = append(missing, "id")
		}
		if v, ok := obj["displayName"]; !ok || !decodeString(v, &w.DisplayName) {
			missing = append(missing, "displayName")
		}
		if v, ok := obj["apiURL"]; !ok || !decodeString(v, &w.APIURL) {
			missing = append(missing, "apiURL")
		}

		if len(missing) > 0 {
			logger.Warn("world entry missing fields, using defaults",
				"index", i,
				"missing", missing,
				"world_id", w.ID,
			)
		}

		worlds = append(worlds, w)
	}

	return worlds, nil
}

// decodeInt accepts a JSON number or a numeric string.
func decodeInt(raw json.RawMessage, dst *int) bool {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := strconv.Atoi(n.String()); err == nil {
			*dst = v
			return true
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*dst = v
			return true
		}
	}
	return false
}

func decodeString(raw json.RawMessage, dst *string) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	*dst = s
	return true
}
