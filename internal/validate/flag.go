// internal/validate/flag.go
package validate

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flag is the parsed form of a boolean-like cell.
type Flag uint8

const (
	FlagUnrecognized Flag = iota
	FlagZero
	FlagOne
)

func (f Flag) String() string {
	switch f {
	case FlagZero:
		return "0"
	case FlagOne:
		return "1"
	}
	return "unrecognized"
}

// Int returns 0 or 1; ok is false for FlagUnrecognized.
func (f Flag) Int() (v int, ok bool) {
	switch f {
	case FlagZero:
		return 0, true
	case FlagOne:
		return 1, true
	}
	return 0, false
}

// ParseFlag maps the accepted boolean-like literal forms onto a Flag:
//
//	bool     true → One, false → Zero
//	integer  1 → One, any other integer → Zero
//	string   "true"/"1" → One, "false"/"0" → Zero (trimmed, case-insensitive)
//
// Everything else, including non-integral numbers and nil, is unrecognized.
func ParseFlag(v any) Flag {
	switch x := v.(type) {
	case bool:
		if x {
			return FlagOne
		}
		return FlagZero
	case int:
		return intFlag(int64(x))
	case int64:
		return intFlag(x)
	case json.Number:
		n, err := strconv.ParseInt(x.String(), 10, 64)
		if err != nil {
			return FlagUnrecognized
		}
		return intFlag(n)
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1":
			return FlagOne
		case "false", "0":
			return FlagZero
		}
	}
	return FlagUnrecognized
}

func intFlag(n int64) Flag {
	if n == 1 {
		return FlagOne
	}
	return FlagZero
}
