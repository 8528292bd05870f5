package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// looseString decodes strings, numbers, booleans and null into a plain string.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = looseString(data)
		return nil
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = looseString(num.String())
	return nil
}

// looseBool decodes booleans, "true"/"false" style strings and numbers.
// Anything unrecognised is false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = false
	if len(data) == 0 {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		raw = strings.TrimSpace(str)
	}
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "on":
		*b = true
		return nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && n != 0 {
		*b = true
	}
	return nil
}

// Layouts seen in stored timestamps besides RFC 3339. The browser client
// wrote locale strings for timeline dates.
var looseTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	time.RFC1123,
	time.RFC1123Z,
}

// looseTime decodes RFC 3339 strings, the layouts above and epoch
// milliseconds; empty, null and unrecognised values become the zero time.
type looseTime time.Time

func (t *looseTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = looseTime(time.Time{})
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '"' {
		if ms, err := strconv.ParseFloat(string(data), 64); err == nil {
			*t = looseTime(time.UnixMilli(int64(ms)).UTC())
		}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	*t = looseTime(parseLooseTime(raw))
	return nil
}

func parseLooseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed
	}
	// Date.toString() appends the zone name in parentheses.
	if i := strings.Index(raw, " ("); i > 0 {
		raw = raw[:i]
	}
	for _, layout := range looseTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
