/*
Package tree implements the attribute/child element tree that note tracks
and scales are persisted as.

An Element has a tag, an ordered list of string attributes and an ordered
list of child elements. The same tree can be written as XML or YAML; see
Encode and Decode.
*/
package tree

import (
	"iter"
	"strconv"
)

type (
	Attr struct {
		Name  string
		Value string
	}

	Element struct {
		Tag      string
		Attrs    []Attr
		Children []*Element
	}
)

func New(tag string) *Element { return &Element{Tag: tag} }

// Set sets the attribute, replacing the value if the attribute already
// exists. Returns the element for chaining.
func (e *Element) Set(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

func (e *Element) SetInt(name string, value int) *Element {
	return e.Set(name, strconv.Itoa(value))
}

// SetFloat formats the value with the shortest representation that parses
// back to the same float32.
func (e *Element) SetFloat(name string, value float32) *Element {
	return e.Set(name, strconv.FormatFloat(float64(value), 'g', -1, 32))
}

func (e *Element) String(name, def string) string {
	if v, ok := e.lookup(name); ok {
		return v
	}
	return def
}

// Int returns def if the attribute is missing or not an integer.
func (e *Element) Int(name string, def int) int {
	v, ok := e.lookup(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// Float returns def if the attribute is missing or not a number.
func (e *Element) Float(name string, def float32) float32 {
	v, ok := e.lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

func (e *Element) lookup(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return e
}

// Prepend inserts the child as the first child of the element.
func (e *Element) Prepend(child *Element) *Element {
	e.Children = append(e.Children, nil)
	copy(e.Children[1:], e.Children)
	e.Children[0] = child
	return e
}

// Child returns the first direct child with the tag, or nil.
func (e *Element) Child(tag string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c != nil && c.Tag == tag {
			return c
		}
	}
	return nil
}

// Find returns the element itself if it has the tag, otherwise its first
// direct child with the tag. Returns nil if neither matches.
func (e *Element) Find(tag string) *Element {
	if e == nil {
		return nil
	}
	if e.Tag == tag {
		return e
	}
	return e.Child(tag)
}

// ChildrenNamed iterates the direct children with the tag, in order.
func (e *Element) ChildrenNamed(tag string) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		if e == nil {
			return
		}
		for _, c := range e.Children {
			if c != nil && c.Tag == tag {
				if !yield(c) {
					return
				}
			}
		}
	}
}
