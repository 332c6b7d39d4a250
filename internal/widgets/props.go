package widgets

import (
	"html/template"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

// getString returns the first key holding a scalar, formatted as text
func getString(props map[string]any, def string, keys ...string) string {
	for _, key := range keys {
		val, ok := props[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64, int, int64, bool:
			return formatValue(v)
		}
	}
	return def
}

// getNumber extracts a numeric prop; numeric strings are accepted
func getNumber(props map[string]any, key string) (float64, bool) {
	return toNumber(props[key])
}

func toNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

// getInt returns an integer prop clamped to [lo, hi]
func getInt(props map[string]any, key string, def, lo, hi int) int {
	f, ok := getNumber(props, key)
	if !ok {
		return def
	}
	n := int(f)
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func getBool(props map[string]any, key string, def bool) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getArray(props map[string]any, keys ...string) []any {
	for _, key := range keys {
		if arr, ok := props[key].([]any); ok {
			return arr
		}
	}
	return nil
}

func getMap(props map[string]any, key string) map[string]any {
	m, _ := props[key].(map[string]any)
	return m
}

// oneOf returns value when it is allowed, def otherwise
func oneOf(value string, def string, allowed ...string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return def
}

// formatValue renders a JSON value as display text
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		data, err := sonic.ConfigStd.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// labelOf extracts display text from a string or an object with a label-like key
func labelOf(item any) string {
	if obj, ok := item.(map[string]any); ok {
		return getString(obj, "", "label", "title", "text", "name", "value")
	}
	return formatValue(item)
}

func childrenHTML(children []types.Output) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(string(c.HTML))
	}
	return b.String()
}

func fragments(children []types.Output) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = string(c.HTML)
	}
	return out
}

// safeURL allows relative references and http, https or mailto URLs
func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return u.String()
	default:
		return ""
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emptyState(message string) template.HTML {
	return template.HTML(`<p class="uir-empty">` + template.HTMLEscapeString(message) + `</p>`)
}
