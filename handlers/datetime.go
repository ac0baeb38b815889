package handlers

import (
	"strings"
	"time"
)

// DefaultLayouts are tried in order by the datetime handler.
var DefaultLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DateTimeHandler parses timestamp strings into time.Time.
type DateTimeHandler struct {
	loc     *time.Location
	layouts []string
}

// DateTime returns a handler parsing zone-less timestamps in loc (UTC when
// nil). Custom layouts replace DefaultLayouts when given.
func DateTime(loc *time.Location, layouts ...string) DateTimeHandler {
	if loc == nil {
		loc = time.UTC
	}
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	return DateTimeHandler{loc: loc, layouts: layouts}
}

func (h DateTimeHandler) Coerce(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, mismatch("datetime", raw)
		}
		layouts := h.layouts
		if len(layouts) == 0 {
			layouts = DefaultLayouts
		}
		loc := h.loc
		if loc == nil {
			loc = time.UTC
		}
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, nil
			}
		}
	}
	return nil, mismatch("datetime", raw)
}
