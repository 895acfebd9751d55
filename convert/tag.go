package convert

import (
	"fmt"
	"strings"
)

// Kind identifies a convertible type.
type Kind string

const (
	String   Kind = "string"
	Int      Kind = "int"
	Float    Kind = "float"
	Bool     Kind = "bool"
	JSON     Kind = "json"
	XML      Kind = "xml"
	DateTime Kind = "datetime"
	Duration Kind = "duration"
	YAML     Kind = "yaml"
	List     Kind = "list"
)

// Tag is the declared type of a variable. Elem is only set on parametrized lists.
type Tag struct {
	Kind Kind
	Elem Kind
}

// Of returns the tag for a scalar kind, or an unparametrized list for List.
func Of(kind Kind) Tag {
	return Tag{Kind: kind}
}

// ListOf returns the tag for a list whose elements convert as elem.
func ListOf(elem Kind) Tag {
	return Tag{Kind: List, Elem: elem}
}

func (t Tag) IsZero() bool {
	return t.Kind == ""
}

func (t Tag) IsList() bool {
	return t.Kind == List
}

func (t Tag) String() string {
	if t.Elem != "" {
		return fmt.Sprintf("%s<%s>", t.Kind, t.Elem)
	}
	return string(t.Kind)
}

// ParseTag parses the text form of a tag: "int", "list", "list<float>".
// It checks syntax only; whether a converter exists is up to the registry.
func ParseTag(s string) (Tag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Tag{}, fmt.Errorf("%w: empty type", ErrInvalidArgument)
	}

	open := strings.IndexByte(s, '<')
	if open < 0 {
		if strings.ContainsAny(s, "<>") {
			return Tag{}, fmt.Errorf("%w: malformed type %q", ErrInvalidArgument, s)
		}
		return Of(Kind(s)), nil
	}

	if !strings.HasSuffix(s, ">") {
		return Tag{}, fmt.Errorf("%w: malformed type %q", ErrInvalidArgument, s)
	}

	outer := Kind(strings.TrimSpace(s[:open]))
	inner := Kind(strings.TrimSpace(s[open+1 : len(s)-1]))
	switch {
	case outer != List:
		return Tag{}, fmt.Errorf("%w: only list can be parametrized, got %q", ErrInvalidArgument, s)
	case inner == "" || strings.ContainsAny(string(inner), "<>"):
		return Tag{}, fmt.Errorf("%w: malformed element type in %q", ErrInvalidArgument, s)
	case inner == List:
		return Tag{}, fmt.Errorf("%w: nested lists are not supported: %q", ErrInvalidArgument, s)
	}

	return ListOf(inner), nil
}
