package instrument

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

const masked = "***"

// MaskKeys is a case insensitive set of keys whose values must never be
// logged (passwords, otp codes, tokens).
type MaskKeys map[string]struct{}

func NewMaskKeys(fields []string) MaskKeys {
	keys := make(MaskKeys, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return keys
}

func (k MaskKeys) Has(key string) bool {
	_, ok := k[strings.ToLower(key)]
	return ok
}

// Data walks decoded JSON and replaces the value of every masked key.
func (k MaskKeys) Data(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, inner := range val {
			if k.Has(key) {
				out[key] = masked
				continue
			}
			out[key] = k.Data(inner)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for key, inner := range val {
			if k.Has(key) {
				out[key] = masked
				continue
			}
			out[key] = inner
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = k.Data(inner)
		}
		return out
	default:
		return v
	}
}

// JSON masks a JSON document, reporting false when b is not JSON.
func (k MaskKeys) JSON(b []byte) (any, bool) {
	if len(b) == 0 || (b[0] != '{' && b[0] != '[') {
		return nil, false
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, false
	}
	return k.Data(doc), true
}

func (k MaskKeys) Headers(h http.Header) http.Header {
	if len(k) == 0 {
		return h
	}
	out := h.Clone()
	for key := range out {
		if k.Has(key) {
			out.Set(key, masked)
		}
	}
	return out
}

func (k MaskKeys) attr(a slog.Attr) slog.Attr {
	if k.Has(a.Key) {
		return slog.String(a.Key, masked)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = k.attr(ga)
		}
		a.Value = slog.GroupValue(out...)
	case slog.KindString:
		if doc, ok := k.JSON([]byte(a.Value.String())); ok {
			if b, err := json.Marshal(doc); err == nil {
				a.Value = slog.StringValue(string(b))
			}
		}
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case map[string]any, map[string]string, []any:
			a.Value = slog.AnyValue(k.Data(v))
		case []byte:
			if doc, ok := k.JSON(v); ok {
				a.Value = slog.AnyValue(doc)
			}
		}
	}

	return a
}
