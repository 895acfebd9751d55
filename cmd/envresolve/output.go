package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/samber/lo"

	"github.com/ab0utbla-k/envresolver/convert"
	"github.com/ab0utbla-k/envresolver/resolver"
)

// renderValue maps resolved values onto JSON-friendly shapes. NaN and
// infinities have no JSON number form and are rendered as strings.
func renderValue(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	case []float64:
		return lo.Map(v, func(f float64, _ int) any { return renderValue(f) })
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case *convert.XMLElement:
		b, err := xml.Marshal(v)
		if err != nil {
			return v
		}
		return string(b)
	case []time.Duration:
		return lo.Map(v, func(d time.Duration, _ int) any { return renderValue(d) })
	case []time.Time:
		return lo.Map(v, func(t time.Time, _ int) any { return renderValue(t) })
	case []*convert.XMLElement:
		return lo.Map(v, func(e *convert.XMLElement, _ int) any { return renderValue(e) })
	case []any:
		return lo.Map(v, func(item any, _ int) any { return renderValue(item) })
	case map[string]any:
		return lo.MapValues(v, func(item any, _ string) any { return renderValue(item) })
	default:
		return v
	}
}

func writeValues(w io.Writer, vals resolver.Values) error {
	rendered := lo.MapValues(vals, func(v any, _ string) any { return renderValue(v) })

	b, err := json.Marshal(rendered, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("cannot encode values: %w", err)
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// writeValue prints one value. Strings are written verbatim, everything else as JSON.
func writeValue(w io.Writer, v any) error {
	v = renderValue(v)
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode value: %w", err)
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
