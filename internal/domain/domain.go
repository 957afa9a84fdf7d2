package domain

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// StringList marshals an ordered list of strings into a JSON column value.
// Nil and empty slices both persist as "[]" so readers never see SQL NULL.
func StringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// Strings decodes a JSON list column back into a slice, tolerating NULL and
// malformed stored values by returning an empty list.
func Strings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
