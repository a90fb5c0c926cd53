package snapshot

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/frameart/storefront/internal/models"
)

// Lookup follows a dotted path through nested maps.
func Lookup(raw map[string]any, path string) any {
	var cur any = raw

	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}

		cur, ok = m[key]
		if !ok {
			return nil
		}
	}

	return cur
}

// Text returns the first non-empty text value among paths.
func Text(raw map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := asString(Lookup(raw, p)); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}

	return ""
}

// CoerceFloat never fails: negative, non-finite and unparsable values are 0.
func CoerceFloat(v any) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, _ = n.Float64()
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}

		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}

	return f
}

// CoerceInt truncates numbers and reads the leading digits of strings, so
// "120cm" is 120.
func CoerceInt(v any) int {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)

		end := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}

		if end == 0 {
			return 0
		}

		n, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0
		}

		return n
	}

	return int(math.Trunc(CoerceFloat(v)))
}

func CoerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))

		return err == nil && parsed
	default:
		return false
	}
}

// CoerceTime reads RFC 3339 strings and native timestamps; anything else is the zero time.
func CoerceTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t != nil {
			return t.UTC()
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t)); err == nil {
			return parsed.UTC()
		}
	}

	return time.Time{}
}

// Strings decodes a stored list of ids, dropping blanks.
func Strings(v any) []string {
	out := []string{}

	switch list := v.(type) {
	case []string:
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range list {
			if s, ok := asString(item); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}

	return out
}

// CartLinesFromRaw decodes a stored cart list. Entries without an id are
// dropped, a quantity below 1 reads as 1 and the first line per id wins.
func CartLinesFromRaw(v any) []models.CartLine {
	lines := []models.CartLine{}
	seen := make(map[string]struct{})

	for _, item := range mapsOf(v) {
		s := Normalize(item)
		if s.ID == "" {
			continue
		}

		if _, dup := seen[s.ID]; dup {
			continue
		}

		seen[s.ID] = struct{}{}

		line := CartLineFromSnapshot(s, nil)
		line.Quantity = max(CoerceInt(item["quantity"]), 1)
		lines = append(lines, line)
	}

	return lines
}

// FavoritesFromRaw decodes a stored favorites list with the same rules as carts.
func FavoritesFromRaw(v any) []models.FavoriteEntry {
	entries := []models.FavoriteEntry{}
	seen := make(map[string]struct{})

	for _, item := range mapsOf(v) {
		s := Normalize(item)
		if s.ID == "" {
			continue
		}

		if _, dup := seen[s.ID]; dup {
			continue
		}

		seen[s.ID] = struct{}{}
		entries = append(entries, FavoriteFromSnapshot(s, CoerceTime(item["addedAt"])))
	}

	return entries
}

func mapsOf(v any) []map[string]any {
	var out []map[string]any

	switch list := v.(type) {
	case []map[string]any:
		out = list
	case []any:
		for _, item := range list {
			if m, ok := asMap(item); ok {
				out = append(out, m)
			}
		}
	case []models.CartLine:
		for _, l := range list {
			out = append(out, l.ToFields())
		}
	case []models.FavoriteEntry:
		for _, f := range list {
			out = append(out, f.ToFields())
		}
	}

	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Raw:
		return m, true
	default:
		return nil, false
	}
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}
