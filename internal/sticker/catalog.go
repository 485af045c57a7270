package sticker

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice identifies one of the predefined stickers. None means no sticker
// has been placed.
type Choice int

const (
	None Choice = iota
	Smile
	Grin
	Wink
	Cool
	Surprised
	Love
)

// Count is the number of stickers offered by the picker.
const Count = 6

// Entry describes a catalog item.
type Entry struct {
	Choice Choice
	Name   string
}

var catalog = [Count]Entry{
	{Smile, "smile"},
	{Grin, "grin"},
	{Wink, "wink"},
	{Cool, "cool"},
	{Surprised, "surprised"},
	{Love, "love"},
}

// Catalog returns the stickers in picker order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog[:])
	return out
}

// Valid reports whether c names a sticker in the catalog.
func (c Choice) Valid() bool {
	return c >= Smile && c <= Love
}

func (c Choice) String() string {
	if !c.Valid() {
		return "none"
	}
	return catalog[c-1].Name
}

// Parse accepts a 1-based catalog index or a sticker name.
func Parse(s string) (Choice, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return None, fmt.Errorf("sticker cannot be empty")
	}
	key = strings.TrimPrefix(key, "#")
	if n, err := strconv.Atoi(key); err == nil {
		c := Choice(n)
		if !c.Valid() {
			return None, fmt.Errorf("sticker %d out of range 1..%d", n, Count)
		}
		return c, nil
	}
	for _, e := range catalog {
		if e.Name == key {
			return e.Choice, nil
		}
	}
	return None, fmt.Errorf("unknown sticker %q", s)
}
