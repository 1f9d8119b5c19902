// Package wizard implements the linear, step-gated form used by the
// register, booking and profile setup flows.
package wizard

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// GeneralField is the ErrorMap key used for submission errors.
const GeneralField = "general"

// ErrorMap maps a field name to a human-readable message.
type ErrorMap map[string]string

// Add records msg for field unless msg is empty.
func (m ErrorMap) Add(field, msg string) {
	if msg != "" {
		m[field] = msg
	}
}

// Has reports whether field carries an error.
func (m ErrorMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Empty reports whether the map holds no errors.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Clone returns a copy of the map. A nil map clones to an empty map.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	maps.Copy(out, m)
	return out
}

// Fields returns the names carrying an error, sorted.
func (m ErrorMap) Fields() []string {
	return slices.Sorted(maps.Keys(m))
}

// Error implements error so a non-empty map can be returned from
// non-interactive runs.
func (m ErrorMap) Error() string {
	parts := make([]string, 0, len(m))
	for _, f := range m.Fields() {
		parts = append(parts, f+": "+m[f])
	}
	return strings.Join(parts, "; ")
}

// Kind tells renderers how to collect a field.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPhone
	KindSecret
	KindNumber
	KindBool
	KindChoice
	KindDate
	KindTime
	KindFile
	KindList
	KindTextArea
)

// Option is one choice of a KindChoice field.
type Option struct {
	Label string
	Value string
}

// Field declares a named field of the form type F. Get and Set convert
// between the typed struct and the string representation used by
// terminals and flags.
type Field[F any] struct {
	Name        string
	Label       string
	Placeholder string
	Hint        string
	Kind        Kind
	Optional    bool
	Options     []Option
	Get         func(f *F) string
	Set         func(f *F, raw string) error
}

// StringField binds a string struct member.
func StringField[F any](name, label string, kind Kind, ptr func(f *F) *string) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Kind:  kind,
		Get:   func(f *F) string { return *ptr(f) },
		Set: func(f *F, raw string) error {
			*ptr(f) = raw
			return nil
		},
	}
}

// BoolField binds a bool struct member.
func BoolField[F any](name, label string, ptr func(f *F) *bool) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Kind:  KindBool,
		Get:   func(f *F) string { return strconv.FormatBool(*ptr(f)) },
		Set: func(f *F, raw string) error {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "", "false", "no", "n", "0":
				*ptr(f) = false
			case "true", "yes", "y", "1":
				*ptr(f) = true
			default:
				return fmt.Errorf("%s: 請輸入 yes 或 no (%q)", name, raw)
			}
			return nil
		},
	}
}

// IntField binds an int struct member.
func IntField[F any](name, label string, ptr func(f *F) *int) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Kind:  KindNumber,
		Get:   func(f *F) string { return strconv.Itoa(*ptr(f)) },
		Set: func(f *F, raw string) error {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%s: 請輸入數字 (%q)", name, raw)
			}
			*ptr(f) = n
			return nil
		},
	}
}

// ListField binds a []string struct member, split on commas.
func ListField[F any](name, label string, ptr func(f *F) *[]string) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Kind:  KindList,
		Get:   func(f *F) string { return strings.Join(*ptr(f), ", ") },
		Set: func(f *F, raw string) error {
			var items []string
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					items = append(items, p)
				}
			}
			*ptr(f) = items
			return nil
		},
	}
}

// ChoiceField binds a string struct member restricted to opts.
func ChoiceField[F any](name, label string, opts []Option, ptr func(f *F) *string) Field[F] {
	return Field[F]{
		Name:    name,
		Label:   label,
		Kind:    KindChoice,
		Options: opts,
		Get:     func(f *F) string { return *ptr(f) },
		Set: func(f *F, raw string) error {
			for _, o := range opts {
				if o.Value == raw {
					*ptr(f) = raw
					return nil
				}
			}
			return fmt.Errorf("%s: 請選擇 %s 其中之一 (%q)", name, optionValues(opts), raw)
		},
	}
}

// With returns a copy of the field with presentation details filled in.
func (fd Field[F]) With(placeholder, hint string, optional bool) Field[F] {
	fd.Placeholder = placeholder
	fd.Hint = hint
	fd.Optional = optional
	return fd
}

// WithOptions returns a copy of the field offering opts as suggestions.
// For list fields the options are presented as a checklist.
func (fd Field[F]) WithOptions(opts []Option) Field[F] {
	fd.Options = opts
	return fd
}

func optionValues(opts []Option) string {
	vals := make([]string, len(opts))
	for i, o := range opts {
		vals[i] = o.Value
	}
	return strings.Join(vals, ", ")
}

// FileField binds a data URL struct member. Set accepts a data URL or
// loads an image from a path; both are held to the upload limits.
func FileField[F any](name, label string, ptr func(f *F) *string) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Kind:  KindFile,
		Get:   func(f *F) string { return *ptr(f) },
		Set: func(f *F, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				*ptr(f) = ""
				return nil
			}
			if strings.HasPrefix(raw, "data:") {
				if err := CheckDataURL(raw); err != nil {
					return err
				}
				*ptr(f) = raw
				return nil
			}
			dataURL, err := LoadImageFile(raw)
			if err != nil {
				return err
			}
			*ptr(f) = dataURL
			return nil
		},
	}
}
