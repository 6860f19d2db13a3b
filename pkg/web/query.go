package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// QueryReader parses typed URL query parameters and collects one error per malformed key.
// Absent keys are not errors; range checks belong to the validator.
type QueryReader struct {
	values url.Values
	errs   map[string]string
}

func NewQueryReader(r *http.Request) *QueryReader {
	return &QueryReader{values: r.URL.Query()}
}

func (q *QueryReader) String(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

// Int returns def when key is absent.
func (q *QueryReader) Int(key string, def int) int {
	raw := q.String(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(key, "number")
		return def
	}
	return v
}

func (q *QueryReader) Float(key string) *float64 {
	raw := q.String(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.fail(key, "numeric")
		return nil
	}
	return &v
}

func (q *QueryReader) Bool(key string) *bool {
	raw := q.String(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(key, "boolean")
		return nil
	}
	return &v
}

// CSV splits a comma separated value, dropping blanks. Repeated keys are merged.
func (q *QueryReader) CSV(key string) []string {
	var out []string
	for _, raw := range q.values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Errors returns the parse failures in the validation_errors format, or nil.
func (q *QueryReader) Errors() map[string]string {
	return q.errs
}

func (q *QueryReader) fail(key, rule string) {
	if q.errs == nil {
		q.errs = make(map[string]string)
	}
	q.errs[key] = "failed on rule: " + rule
}
