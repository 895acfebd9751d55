package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	"github.com/ab0utbla-k/envresolver/internal/env"
)

func parseString(raw string) (any, error) {
	return raw, nil
}

func parseInt(raw string) (any, error) {
	return env.ParseInt(raw)
}

// parseFloat accepts decimal and scientific literals; hex floats are rejected.
func parseFloat(raw string) (any, error) {
	digits := strings.TrimLeft(raw, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return nil, fmt.Errorf("invalid float %q", raw)
	}
	return env.ParseFloat(raw)
}

func parseDuration(raw string) (any, error) {
	return env.ParseDuration(raw)
}

// parseBool accepts true/y/yes/1 and false/n/no/0, case-insensitively.
func parseBool(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "y", "yes", "1":
		return true, nil
	case "false", "n", "no", "0":
		return false, nil
	default:
		return nil, fmt.Errorf("invalid boolean %q", raw)
	}
}

func parseJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseYAML(raw string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// parseDateTime requires raw to match layout exactly. time.Parse accepts
// fractional seconds after the seconds field even when layout has none.
func parseDateTime(layout string) Func {
	fractional := strings.Contains(layout, "05.0") || strings.Contains(layout, "05.9") ||
		strings.Contains(layout, "05,0") || strings.Contains(layout, "05,9")

	return func(raw string) (any, error) {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return nil, err
		}
		if !fractional && t.Nanosecond() != 0 {
			return nil, fmt.Errorf("unconverted fraction in %q for layout %q", raw, layout)
		}
		return t, nil
	}
}

// collectors turn converted list elements into a typed slice per element kind.
var collectors = map[Kind]func([]any) any{
	String:   collect[string],
	Int:      collect[int64],
	Float:    collect[float64],
	Bool:     collect[bool],
	XML:      collect[*XMLElement],
	DateTime: collect[time.Time],
	Duration: collect[time.Duration],
}

// collect returns items unchanged when a replaced converter produced another type.
func collect[T any](items []any) any {
	if !lo.EveryBy(items, func(item any) bool {
		_, ok := item.(T)
		return ok
	}) {
		return items
	}

	return lo.Map(items, func(item any, _ int) T {
		return item.(T)
	})
}
