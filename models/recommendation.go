package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

type Weather struct {
	Temp      *float64 `json:"temp"`
	Condition string   `json:"condition"`
}

// IsZero reports whether neither a temperature nor a condition was given.
func (w Weather) IsZero() bool {
	return w.Temp == nil && w.Condition == ""
}

// ItemRef is a garment id echoed back by the model. Models sometimes answer
// with a bare number instead of a string, both decode to the same value.
type ItemRef string

func (r *ItemRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ItemRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = ItemRef(n.String())
	return nil
}

// Slot is one position of an outfit. An unfilled slot has every field nil.
type Slot struct {
	ItemID *ItemRef `json:"item_id"`
	Name   *string  `json:"name"`
	Reason *string  `json:"reason"`
}

func (s Slot) IsEmpty() bool {
	return (s.ItemID == nil || *s.ItemID == "") && s.Name == nil && s.Reason == nil
}

// Recommendation is the outfit object returned by the model. The typed
// fields are filled when the value has the expected shape and left zero
// otherwise. Fields keeps every key exactly as the model sent it.
type Recommendation struct {
	Top          Slot   `json:"top"`
	Bottom       Slot   `json:"bottom"`
	Outer        Slot   `json:"outer"`
	Shoes        Slot   `json:"shoes"`
	Concept      string `json:"concept"`
	Tip          string `json:"tip"`
	ColorHarmony string `json:"color_harmony"`

	Fields map[string]json.RawMessage `json:"-"`
}

type recommendationFields Recommendation

// UnmarshalJSON only fails when data is not a JSON object.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("recommendation is not a JSON object")
	}
	*r = Recommendation{Fields: fields}
	for key, slot := range map[string]*Slot{"top": &r.Top, "bottom": &r.Bottom, "outer": &r.Outer, "shoes": &r.Shoes} {
		if v, ok := fields[key]; ok && json.Unmarshal(v, slot) != nil {
			*slot = Slot{}
		}
	}
	for key, text := range map[string]*string{"concept": &r.Concept, "tip": &r.Tip, "color_harmony": &r.ColorHarmony} {
		if v, ok := fields[key]; ok && json.Unmarshal(v, text) != nil {
			*text = ""
		}
	}
	return nil
}

// MarshalJSON writes the decoded object back unchanged. A Recommendation
// built in code is written from its typed fields.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.Fields != nil {
		return json.Marshal(r.Fields)
	}
	return json.Marshal(recommendationFields(r))
}

// UnknownItemIDs returns the ids referenced by the outfit that are not in
// garments, in slot order.
func (r Recommendation) UnknownItemIDs(garments []Garment) []string {
	known := make(map[string]struct{}, len(garments))
	for _, g := range garments {
		known[g.ID] = struct{}{}
	}
	var unknown []string
	for _, slot := range []Slot{r.Top, r.Bottom, r.Outer, r.Shoes} {
		if slot.ItemID == nil || *slot.ItemID == "" {
			continue
		}
		if _, ok := known[string(*slot.ItemID)]; !ok {
			unknown = append(unknown, string(*slot.ItemID))
		}
	}
	return unknown
}

// FormatID renders a numeric primary key as a garment id.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID is the inverse of FormatID.
func ParseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, NewValidationError(field, "must be a positive number, got %q", raw)
	}
	return uint(id), nil
}
