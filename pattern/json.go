package pattern

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FromJSON decodes a pattern document in the wire shape described by the
// engine's external interface: a top-level object with version, name,
// optional comment, optional bindObject, optional editDistance, and an
// elements array whose entries are single-key objects tagged group,
// repeat, or, line, or anyline.
func FromJSON(data []byte) (*Root, error) {
	var doc struct {
		Version      string          `json:"version"`
		Name         string          `json:"name"`
		Comment      string          `json:"comment"`
		BindObject   string          `json:"bindObject"`
		EditDistance *int            `json:"editDistance"`
		Elements     json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Field: "root", Detail: fmt.Sprintf("malformed JSON: %v", err)}
	}

	children, err := decodeElements(doc.Elements)
	if err != nil {
		return nil, err
	}

	editDistance := 0
	if doc.EditDistance != nil {
		editDistance = *doc.EditDistance
	}

	return NewRoot(doc.Name, doc.BindObject, editDistance, children, doc.Comment)
}

func decodeElements(raw json.RawMessage) ([]Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &ValidationError{Field: "elements", Detail: fmt.Sprintf("malformed JSON: %v", err)}
	}

	nodes := make([]Node, 0, len(entries))
	for i, entry := range entries {
		node, err := decodeElement(entry)
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("elements[%d]", i), Detail: err.Error()}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeElement(entry map[string]json.RawMessage) (Node, error) {
	if raw, ok := entry["group"]; ok {
		return decodeGroup(raw)
	}
	if raw, ok := entry["repeat"]; ok {
		return decodeRepeat(raw)
	}
	if raw, ok := entry["or"]; ok {
		return decodeOr(raw)
	}
	if raw, ok := entry["line"]; ok {
		return decodeLine(raw)
	}
	if raw, ok := entry["anyline"]; ok {
		return decodeAnyLine(raw)
	}
	return nil, fmt.Errorf("unrecognized element key, expected one of group/repeat/or/line/anyline")
}

func decodeGroup(raw json.RawMessage) (Node, error) {
	var g struct {
		BindObject string          `json:"bindObject"`
		Comment    string          `json:"comment"`
		Elements   json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	children, err := decodeElements(g.Elements)
	if err != nil {
		return nil, err
	}
	return NewGroup(g.BindObject, children, g.Comment)
}

func decodeRepeat(raw json.RawMessage) (Node, error) {
	var r struct {
		Mode      string          `json:"mode"`
		BindArray string          `json:"bindArray"`
		Comment   string          `json:"comment"`
		Elements  json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	children, err := decodeElements(r.Elements)
	if err != nil {
		return nil, err
	}
	var child Node
	switch len(children) {
	case 0:
		return nil, fmt.Errorf("repeat must have exactly one child element")
	case 1:
		child = children[0]
	default:
		grouped, err := NewGroup(r.BindArray+"Item", children, "")
		if err != nil {
			return nil, err
		}
		child = grouped
	}

	mode, err := decodeRepeatMode(r.Mode)
	if err != nil {
		return nil, err
	}
	return NewRepeat(mode, r.BindArray, child, r.Comment)
}

func decodeRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "zeroOrMore":
		return ZeroOrMore, nil
	case "oneOrMore":
		return OneOrMore, nil
	case "zeroOrOne":
		return ZeroOrOne, nil
	default:
		return 0, fmt.Errorf("unrecognized repeat mode %q", s)
	}
}

func decodeOr(raw json.RawMessage) (Node, error) {
	var o struct {
		Comment  string          `json:"comment"`
		Elements json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, err
	}
	children, err := decodeElements(o.Elements)
	if err != nil {
		return nil, err
	}
	return NewOr(children, o.Comment)
}

func decodeLine(raw json.RawMessage) (Node, error) {
	var l struct {
		Regex          string         `json:"regex"`
		Comment        string         `json:"comment"`
		BindProperties []jsonBindProp `json:"bindProperties"`
	}
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return NewLine(l.Regex, decodeBindings(l.BindProperties), l.Comment)
}

func decodeAnyLine(raw json.RawMessage) (Node, error) {
	var a struct {
		Comment        string         `json:"comment"`
		BindProperties []jsonBindProp `json:"bindProperties"`
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return NewAnyLine(decodeBindings(a.BindProperties), a.Comment), nil
}

type jsonBindProp struct {
	Property string `json:"property"`
	Format   string `json:"format"`
}

func decodeBindings(props []jsonBindProp) []PropertyBinding {
	if len(props) == 0 {
		return nil
	}
	out := make([]PropertyBinding, len(props))
	for i, p := range props {
		out[i] = PropertyBinding{
			Name:      strings.TrimSpace(p.Property),
			Formatter: strings.TrimSpace(p.Format),
		}
	}
	return out
}
