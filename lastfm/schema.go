package lastfm

import (
	"encoding/json"
	"strconv"
)

// node is one JSON object of a response together with its dotted path from
// the response root. Each field kind in the payload has one reader method,
// and every normalize function is written in terms of these readers so a
// coercion rule is defined exactly once.
type node struct {
	path string
	m    map[string]any
}

func rootNode(raw RawResponse) node {
	return node{m: raw}
}

func (n node) at(name string) string {
	if n.path == "" {
		return name
	}
	return n.path + "." + name
}

func (n node) missing(name string) error {
	return &SchemaError{Path: n.at(name), Reason: "field required"}
}

func (n node) invalid(name string, v any, reason string) error {
	return &SchemaError{Path: n.at(name), Value: v, Reason: reason}
}

// present reports whether name holds a non-null value.
func (n node) present(name string) (any, bool) {
	v, ok := n.m[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// str reads a required string.
func (n node) str(name string) (string, error) {
	v, ok := n.present(name)
	if !ok {
		return "", n.missing(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", n.invalid(name, v, "expected string")
	}
	return s, nil
}

// optStr reads an optional string; missing or null is absent.
func (n node) optStr(name string) (*string, error) {
	if _, ok := n.present(name); !ok {
		return nil, nil
	}
	s, err := n.str(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// mbid reads a MusicBrainz ID. Missing, null and "" are all absent.
func (n node) mbid(name string) (*string, error) {
	s, err := n.optStr(name)
	if err != nil || s == nil || *s == "" {
		return nil, err
	}
	return s, nil
}

// integer reads a required integer sent as a JSON number or a base-10
// numeric string.
func (n node) integer(name string) (int64, error) {
	v, ok := n.present(name)
	if !ok {
		return 0, n.missing(name)
	}
	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = t
	default:
		return 0, n.invalid(name, v, "expected integer")
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, n.invalid(name, v, "expected integer")
	}
	return i, nil
}

// optInteger reads an optional integer; missing or null is absent.
func (n node) optInteger(name string) (*int64, error) {
	if _, ok := n.present(name); !ok {
		return nil, nil
	}
	i, err := n.integer(name)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// boolean reads a flag sent as "0"/"1", 0/1 or a JSON boolean. Any nonzero
// integer is true.
func (n node) boolean(name string) (bool, error) {
	v, ok := n.present(name)
	if !ok {
		return false, n.missing(name)
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	i, err := n.integer(name)
	if err != nil {
		return false, n.invalid(name, v, "expected boolean flag")
	}
	return i != 0, nil
}

// imageSize reads an image size enum; "" is absent.
func (n node) imageSize(name string) (*ImageSize, error) {
	s, err := n.str(name)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	size := ImageSize(s)
	if !size.Valid() {
		return nil, n.invalid(name, s, "unknown image size")
	}
	return &size, nil
}

// object reads a required nested object.
func (n node) object(name string) (node, error) {
	v, ok := n.present(name)
	if !ok {
		return node{}, n.missing(name)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return node{}, n.invalid(name, v, "expected object")
	}
	return node{path: n.at(name), m: m}, nil
}

// optObject reads an optional nested object. Missing, null and "" are
// absent; the API sends "" for sections such as tags when they are empty.
func (n node) optObject(name string) (node, bool, error) {
	v, ok := n.present(name)
	if !ok {
		return node{}, false, nil
	}
	if s, isStr := v.(string); isStr && s == "" {
		return node{}, false, nil
	}
	obj, err := n.object(name)
	if err != nil {
		return node{}, false, err
	}
	return obj, true, nil
}

// list reads a required list of objects. A lone object is treated as a
// one-element list because the API drops the array when a result set has
// exactly one member.
func (n node) list(name string) ([]node, error) {
	v, ok := n.present(name)
	if !ok {
		return nil, n.missing(name)
	}
	switch t := v.(type) {
	case map[string]any:
		return []node{{path: n.at(name) + "[0]", m: t}}, nil
	case []any:
		out := make([]node, 0, len(t))
		for i, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &SchemaError{
					Path:   n.at(name) + "[" + strconv.Itoa(i) + "]",
					Value:  item,
					Reason: "expected object",
				}
			}
			out = append(out, node{path: n.at(name) + "[" + strconv.Itoa(i) + "]", m: m})
		}
		return out, nil
	default:
		return nil, n.invalid(name, v, "expected object or list of objects")
	}
}

// each normalizes every element of the list field name with fn.
func each[T any](n node, name string, fn func(node) (T, error)) ([]T, error) {
	items, err := n.list(name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
