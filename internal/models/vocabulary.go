package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TagError reports a value outside a closed vocabulary.
type TagError struct {
	Vocabulary string
	Value      string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Vocabulary, e.Value)
}

// Vocabulary is the closed set of lowercase tags a string-backed enum may take.
type Vocabulary[T ~string] struct {
	name   string
	values []T
}

func newVocabulary[T ~string](name string, values ...T) Vocabulary[T] {
	return Vocabulary[T]{name: name, values: values}
}

// Name is the vocabulary name used in error messages.
func (v Vocabulary[T]) Name() string { return v.name }

// Values returns the tags in declaration order.
func (v Vocabulary[T]) Values() []T {
	out := make([]T, len(v.values))
	copy(out, v.values)
	return out
}

// Contains reports whether t is one of the vocabulary's tags.
func (v Vocabulary[T]) Contains(t T) bool {
	for _, candidate := range v.values {
		if candidate == t {
			return true
		}
	}
	return false
}

// Parse matches s against the vocabulary, ignoring case and surrounding whitespace.
func (v Vocabulary[T]) Parse(s string) (T, error) {
	t := T(strings.ToLower(strings.TrimSpace(s)))
	if !v.Contains(t) {
		return "", &TagError{Vocabulary: v.name, Value: s}
	}
	return t, nil
}

// ParseList parses every non-blank entry, keeping first-seen order and dropping duplicates.
func (v Vocabulary[T]) ParseList(raw []string) ([]T, error) {
	out := make([]T, 0, len(raw))
	seen := make(map[T]bool, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		t, err := v.Parse(s)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

func (v Vocabulary[T]) scan(dst *T, src any) error {
	var s string
	switch val := src.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	case nil:
		return fmt.Errorf("scan %s: NULL value", v.name)
	default:
		return fmt.Errorf("scan %s: unsupported type %T", v.name, src)
	}
	t, err := v.Parse(s)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

func (v Vocabulary[T]) value(t T) (driver.Value, error) {
	if !v.Contains(t) {
		return nil, &TagError{Vocabulary: v.name, Value: string(t)}
	}
	return string(t), nil
}

// TagList is an unordered tag collection persisted as a JSON array.
type TagList[T ~string] []T

func (l *TagList[T]) Scan(src any) error {
	var raw []byte
	switch val := src.(type) {
	case nil:
		*l = TagList[T]{}
		return nil
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		return fmt.Errorf("scan tag list: unsupported type %T", src)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan tag list: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	*l = out
	return nil
}

func (l TagList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Strings is a convenience for templates and form re-rendering.
func (l TagList[T]) Strings() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = string(t)
	}
	return out
}

// Has reports whether the list contains tag s.
func (l TagList[T]) Has(s string) bool {
	for _, t := range l {
		if string(t) == s {
			return true
		}
	}
	return false
}
