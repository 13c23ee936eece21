package planner

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The model does not always respect the types of the requested schema
// ("sets": "3", "reps": 12, "duration": "45 min"). The loose types below accept
// those variants and remember whether the field was present at all.

// looseString accepts a JSON string, number or bool.
type looseString struct {
	Value string
	Set   bool
}

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = looseString{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString{Value: v, Set: true}
		return nil
	}
	*s = looseString{Value: string(data), Set: true}
	return nil
}

// looseInt accepts a JSON number or a string starting with an integer.
// Anything else decodes as absent.
type looseInt struct {
	Value int
	Set   bool
}

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = looseInt{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		if i, ok := leadingInt(v); ok {
			*n = looseInt{Value: i, Set: true}
		}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Objects, arrays, booleans: treat as absent.
		return nil
	}
	*n = looseInt{Value: int(math.Round(f)), Set: true}
	return nil
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	i, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return i, true
}

// looseBool accepts a JSON bool or the strings "true"/"false".
type looseBool struct {
	Value bool
	Set   bool
}

func (b *looseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = looseBool{}
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "true":
		*b = looseBool{Value: true, Set: true}
	case "false":
		*b = looseBool{Value: false, Set: true}
	}
	return nil
}
