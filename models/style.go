package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StyleProp is a single CSS declaration in an element's style bag.
type StyleProp struct {
	Name  string
	Value string
}

// StyleMap is an ordered CSS property bag, keyed by camelCase property
// names. A plain map would lose declaration order, which the inline-style
// serializer must keep, so the bag is stored as an ordered list that
// marshals to a JSON object.
type StyleMap []StyleProp

func (m StyleMap) Get(name string) (string, bool) {
	for _, p := range m {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Set replaces the value in place when the property exists, otherwise
// appends it.
func (m *StyleMap) Set(name, value string) {
	for i, p := range *m {
		if p.Name == name {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, StyleProp{Name: name, Value: value})
}

func (m StyleMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *StyleMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("style: expected object, got %v", tok)
	}

	out := StyleMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = append(out, StyleProp{Name: key, Value: styleValueString(raw)})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}

	*m = out
	return nil
}

func styleValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
