package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a loosely-typed content row as returned by the record store.
// Values may be strings, numbers, booleans, nil, times, or nested maps.
// Decoders below tolerate missing and mistyped fields; a field that cannot
// be read as the wanted type reads as the zero value.
type Record map[string]any

// Common field names shared by every content collection.
const (
	FieldID        = "_id"
	FieldActive    = "active"
	FieldPosition  = "position"
	FieldCreatedAt = "created_at"
)

// ID returns the record identifier as a string.
func (r Record) ID() string {
	switch v := r[FieldID].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// String returns the named field as a string. Numbers are formatted, other
// types read as "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case int, int32, int64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Int returns the named field as an int. Numeric strings are parsed.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Time returns the named field as a time. RFC 3339 strings are parsed.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

// StringMap returns a nested mapping as map[string]string. Non-string
// values inside the mapping read as "".
func (r Record) StringMap(key string) map[string]string {
	var raw map[string]any
	switch v := r[key].(type) {
	case map[string]any:
		raw = v
	case bson.M:
		raw = v
	case bson.D:
		raw = v.Map()
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	default:
		return map[string]string{}
	}

	out := make(map[string]string, len(raw))
	for k, val := range raw {
		s, _ := val.(string)
		out[k] = s
	}
	return out
}
