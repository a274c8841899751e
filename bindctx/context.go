// Package bindctx implements the Binding Context: a stack of frames that
// incrementally builds a nested output record (objects, arrays, string
// properties) in response to the structural side-effects a simulator
// emits while walking a Line-NFA.
package bindctx

import (
	"fmt"
	"strconv"
	"strings"
)

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
	frameArrayItem
)

func (k frameKind) String() string {
	switch k {
	case frameObject:
		return "object"
	case frameArray:
		return "array"
	case frameArrayItem:
		return "array-item"
	default:
		return "unknown"
	}
}

type frame struct {
	kind frameKind
	name string
	obj  *Object // populated for frameObject and frameArrayItem
	arr  *Array  // populated for frameArray
}

// CaptureEntry records one bound property for diagnostic/position
// reporting purposes: the JSON-pointer-like path it was written to, the
// raw captured text, the formatted value actually bound, the line it was
// read from, and a best-effort column range within that line.
type CaptureEntry struct {
	Path      string
	Raw       string
	Formatted string
	Line      int
	ColStart  int
	ColEnd    int
}

// Context is the per-match Binding Context: a LIFO stack of frames rooted
// in a synthetic frame whose single property is the pattern root's bind
// object name. A fresh Context is constructed for every match; it is
// never shared between matches.
type Context struct {
	stack      []*frame
	rootName   string
	rootObj    *Object
	captures   []CaptureEntry
	formatters *Formatters
}

// New creates a Context for a match whose pattern root binds its output
// under rootName, using formatters for any bindProperty's format spec.
func New(rootName string, formatters *Formatters) *Context {
	root := NewObject()
	c := &Context{
		rootName:   rootName,
		rootObj:    root,
		formatters: formatters,
	}
	c.stack = []*frame{{kind: frameObject, name: "", obj: root}}
	return c
}

func (c *Context) top() *frame {
	return c.stack[len(c.stack)-1]
}

// insert places value under name in the current frame, following the
// same rule push_object uses: under that name if the current frame is an
// object, or as a new array element if the current frame is an array
// (an edge case unreachable from a well-formed pattern but handled so it
// never corrupts state).
func (c *Context) insert(name string, value interface{}) error {
	top := c.top()
	switch top.kind {
	case frameObject, frameArrayItem:
		top.obj.Set(name, value)
		return nil
	case frameArray:
		obj, ok := value.(*Object)
		if !ok {
			return &StateError{Op: "insert", Detail: "only objects may be appended directly to an array frame"}
		}
		top.arr.Items = append(top.arr.Items, obj)
		return nil
	default:
		return &StateError{Op: "insert", Detail: "unknown frame kind"}
	}
}

// PushObject pushes a new Object frame named name under the current
// frame. name must be non-empty.
func (c *Context) PushObject(name string) error {
	if strings.TrimSpace(name) == "" {
		return &StateError{Op: "push_object", Detail: "name must not be empty"}
	}
	obj := NewObject()
	if err := c.insert(name, obj); err != nil {
		return err
	}
	c.stack = append(c.stack, &frame{kind: frameObject, name: name, obj: obj})
	return nil
}

// PopObject pops the top frame, which must be an object frame.
func (c *Context) PopObject() error {
	if len(c.stack) == 0 || c.top().kind != frameObject {
		return &StateError{Op: "pop_object", Detail: "top frame is not an object frame"}
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// PushArray pushes a new Array frame named name under the current frame.
func (c *Context) PushArray(name string) error {
	if strings.TrimSpace(name) == "" {
		return &StateError{Op: "push_array", Detail: "name must not be empty"}
	}
	arr := NewArray()
	if err := c.insert(name, arr); err != nil {
		return err
	}
	c.stack = append(c.stack, &frame{kind: frameArray, name: name, arr: arr})
	return nil
}

// PopArray pops the top frame, which must be an array frame.
func (c *Context) PopArray() error {
	if len(c.stack) == 0 || c.top().kind != frameArray {
		return &StateError{Op: "pop_array", Detail: "top frame is not an array frame"}
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// PushArrayItem appends a fresh object to the current array frame and
// pushes it as an array-item frame.
func (c *Context) PushArrayItem() error {
	if len(c.stack) == 0 || c.top().kind != frameArray {
		return &StateError{Op: "push_array_item", Detail: "top frame is not an array frame"}
	}
	arrFrame := c.top()
	item := NewObject()
	arrFrame.arr.Items = append(arrFrame.arr.Items, item)
	c.stack = append(c.stack, &frame{kind: frameArrayItem, obj: item})
	return nil
}

// PopArrayItem pops the top frame, which must be an array-item frame.
func (c *Context) PopArrayItem() error {
	if len(c.stack) == 0 || c.top().kind != frameArrayItem {
		return &StateError{Op: "pop_array_item", Detail: "top frame is not an array-item frame"}
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// BindProperty binds raw under name in the current frame, which must be
// an object or array-item frame, after passing it through formatterSpec
// (empty spec means no formatting).
func (c *Context) BindProperty(name, raw, formatterSpec string, line, colStart, colEnd int) error {
	top := c.top()
	if top.kind != frameObject && top.kind != frameArrayItem {
		return &StateError{Op: "bind_property", Detail: "top frame is not an object frame"}
	}

	formatted := raw
	if c.formatters != nil && formatterSpec != "" {
		formatted = c.formatters.Apply(formatterSpec, raw)
	}
	top.obj.Set(name, formatted)

	c.RecordCapture(CaptureEntry{
		Path:      c.currentPathFor(name),
		Raw:       raw,
		Formatted: formatted,
		Line:      line,
		ColStart:  colStart,
		ColEnd:    colEnd,
	})
	return nil
}

// RecordCapture appends a diagnostic capture log entry.
func (c *Context) RecordCapture(entry CaptureEntry) {
	c.captures = append(c.captures, entry)
}

// Captures returns the accumulated capture log, carried for future
// position reporting.
func (c *Context) Captures() []CaptureEntry {
	return c.captures
}

// CurrentPath returns a JSON-Pointer-style string describing the current
// frame's location in the record tree.
func (c *Context) CurrentPath() string {
	return c.currentPathFor("")
}

// currentPathFor builds a JSON-Pointer-style path from the real (i.e.
// non-synthetic) frames on the stack. The synthetic root frame at index
// 0 contributes nothing of its own: the pattern root's own StartGroup
// push (almost always named identically to rootName) already supplies
// the leading "/rootName" segment, so prefixing it again here would
// double it.
func (c *Context) currentPathFor(leaf string) string {
	var b strings.Builder
	for i := 1; i < len(c.stack); i++ {
		f := c.stack[i]
		switch f.kind {
		case frameObject:
			b.WriteByte('/')
			b.WriteString(f.name)
		case frameArray:
			b.WriteByte('/')
			b.WriteString(f.name)
		case frameArrayItem:
			// The array frame immediately below records the index of this
			// element as len(Items)-1 at the time it was pushed.
			if i > 0 && c.stack[i-1].kind == frameArray {
				idx := len(c.stack[i-1].arr.Items) - 1
				b.WriteByte('/')
				b.WriteString(strconv.Itoa(idx))
			}
		}
	}
	if leaf != "" {
		b.WriteByte('/')
		b.WriteString(leaf)
	}
	return b.String()
}

// ToRecord returns the finished record: an object whose single top-level
// key is rootName.
func (c *Context) ToRecord() *Object {
	return c.rootObj
}

// String renders a debug view of the current stack depth and top frame
// kind, useful when diagnosing an "Internal matching error".
func (c *Context) String() string {
	if len(c.stack) == 0 {
		return "bindctx.Context{empty}"
	}
	return fmt.Sprintf("bindctx.Context{depth=%d, top=%v}", len(c.stack), c.top().kind)
}
