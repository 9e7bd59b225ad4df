package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ref is a reference to another document: a bare id when not populated, the
// document itself when it is.
type Ref[T any] struct {
	ID  string
	Doc *T
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = Ref[T]{}
		return nil
	case len(b) > 0 && b[0] == '"':
		r.Doc = nil
		return json.Unmarshal(b, &r.ID)
	}
	var doc T
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	var id struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	r.ID, r.Doc = id.ID, &doc
	return nil
}

// Float accepts a JSON number or a numeric string. An empty string decodes to
// zero so presence checks report the field as unfilled.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*f = Float(v)
	return nil
}

func (f *Float) Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// Int accepts a JSON number or a numeric string.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	var f Float
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	if float64(f) != float64(int(f)) {
		return fmt.Errorf("not an integer: %s", b)
	}
	*n = Int(f)
	return nil
}

const dayLayout = "2006-01-02"

// Date accepts a calendar day (2006-01-02) or an RFC 3339 timestamp and
// encodes as RFC 3339 in UTC.
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dayLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t.UTC()
	return nil
}

func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func Str(s string) *string { return &s }
