// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"fmt"
)

// jsonStrings scans a JSON-array TEXT column into a string slice. NULL and
// empty columns scan to nil.
type jsonStrings struct {
	Strings []string
}

func (j *jsonStrings) Scan(src any) error {
	j.Strings = nil
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &j.Strings)
}

// marshalJSON encodes a value for a JSON TEXT column. Nil slices and maps
// encode as "null".
func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}
