package api

import (
	"errors"
	"testing"

	"github.com/rickgao/boundless-data/internal/model"
)

func TestParseWorlds(t *testing.T) {
	t.Run("extracts three fields and ignores the rest", func(t *testing.T) {
		data := []byte(`[
			{"id": 1, "displayName": "Terra", "apiURL": "http://x/1", "region": "use", "tier": 2},
			{"id": 2, "displayName": "Gyosha", "apiURL": "http://x/2", "nested": {"id": 99}}
		]`)

		worlds, err := ParseWorlds(data, nil)
		if err != nil {
			t.Fatalf("ParseWorlds: %v", err)
		}
		want := []model.World{
			{ID: 1, DisplayName: "Terra", APIURL: "http://x/1"},
			{ID: 2, DisplayName: "Gyosha", APIURL: "http://x/2"},
		}
		if len(worlds) != len(want) {
			t.Fatalf("len(worlds) = %d, want %d", len(worlds), len(want))
		}
		for i := range want {
			if worlds[i] != want[i] {
				t.Errorf("worlds[%d] = %+v, want %+v", i, worlds[i], want[i])
			}
		}
	})

	t.Run("missing id defaults to zero", func(t *testing.T) {
		data := []byte(`[{"displayName": "Nameless", "apiURL": "http://x/n"}, {"id": 3}]`)

		worlds, err := ParseWorlds(data, nil)
		if err != nil {
			t.Fatalf("ParseWorlds: %v", err)
		}
		if len(worlds) != 2 {
			t.Fatalf("len(worlds) = %d, want 2", len(worlds))
		}
		if worlds[0].ID != 0 || worlds[0].DisplayName != "Nameless" {
			t.Errorf("worlds[0] = %+v, want ID 0 Nameless", worlds[0])
		}
		if worlds[1] != (model.World{ID: 3}) {
			t.Errorf("worlds[1] = %+v, want {ID:3}", worlds[1])
		}
	})

	t.Run("numeric string id", func(t *testing.T) {
		worlds, err := ParseWorlds([]byte(`[{"id": "42"}]`), nil)
		if err != nil {
			t.Fatalf("ParseWorlds: %v", err)
		}
		if worlds[0].ID != 42 {
			t.Errorf("ID = %d, want 42", worlds[0].ID)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		worlds, err := ParseWorlds([]byte(` [] `), nil)
		if err != nil {
			t.Fatalf("ParseWorlds: %v", err)
		}
		if len(worlds) != 0 {
			t.Errorf("len(worlds) = %d, want 0", len(worlds))
		}
	})

	t.Run("not an array", func(t *testing.T) {
		for _, data := range []string{`{"id": 1}`, ``, `null`, `"worlds"`} {
			if _, err := ParseWorlds([]byte(data), nil); !errors.Is(err, ErrNotArray) {
				t.Errorf("ParseWorlds(%q) error = %v, want ErrNotArray", data, err)
			}
		}
	})

	t.Run("broken json", func(t *testing.T) {
		if _, err := ParseWorlds([]byte(`[{"id": 1,`), nil); err == nil {
			t.Error("expected error for truncated json")
		}
	})
}

func TestURLs(t *testing.T) {
	if got := GameServersURL("https://api.example.com/"); got != "https://api.example.com/list-gameservers" {
		t.Errorf("GameServersURL = %q", got)
	}
	if got := GameServersURL("https://api.example.com/v1"); got != "https://api.example.com/v1/list-gameservers" {
		t.Errorf("GameServersURL without slash = %q", got)
	}

	w := model.World{ID: 1, APIURL: "http://x/1"}
	if got := ShoppingURL(w, model.Sell, 10775); got != "http://x/1/shopping/S/10775" {
		t.Errorf("ShoppingURL(sell) = %q", got)
	}
	if got := ShoppingURL(w, model.Buy, 7); got != "http://x/1/shopping/B/7" {
		t.Errorf("ShoppingURL(buy) = %q", got)
	}
}

func TestWorldDiscoveryError(t *testing.T) {
	err := &WorldDiscoveryError{URL: "http://x/list-gameservers", Err: ErrNotArray}
	if !errors.Is(err, ErrNotArray) {
		t.Error("errors.Is(err, ErrNotArray) = false")
	}
	want := "world discovery from http://x/list-gameservers: world list is not a json array"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
