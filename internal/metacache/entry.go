// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metacache

import "encoding/json"

// Entry is one cached publication record: the publishing date and sanitized
// title, plus arbitrary extra string keys written through WriteMeta. On
// disk the extras sit flat beside the fixed fields:
//
//	{"published": "2024-03-01", "title": "...", "collaboration": "any"}
//
// so the file stays a plain id→object map that round-trips without loss
// for every key ever written.
type Entry struct {
	Published string
	Title     string

	meta map[string]string
}

// fixed field names; extra keys may not shadow them.
const (
	fieldPublished = "published"
	fieldTitle     = "title"
)

func (e *Entry) setMeta(key, value string) {
	if key == fieldPublished {
		e.Published = value
		return
	}
	if key == fieldTitle {
		e.Title = value
		return
	}
	if e.meta == nil {
		e.meta = make(map[string]string)
	}
	e.meta[key] = value
}

// MarshalJSON flattens the fixed fields and extras into a single object.
func (e *Entry) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(e.meta)+2)
	for k, v := range e.meta {
		flat[k] = v
	}
	flat[fieldPublished] = e.Published
	flat[fieldTitle] = e.Title
	return json.Marshal(flat)
}

// UnmarshalJSON splits a flat object back into fixed fields and extras.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	e.Published = flat[fieldPublished]
	e.Title = flat[fieldTitle]
	delete(flat, fieldPublished)
	delete(flat, fieldTitle)
	if len(flat) > 0 {
		e.meta = flat
	} else {
		e.meta = nil
	}
	return nil
}
