// Package fields populates descriptor structs from definition tree nodes.
//
// Each child of the node becomes one field: leaf children supply their value
// string, children with children of their own become nested maps. Values are
// converted by mapstructure with weak typing, so "12" fills an int field and
// "a, b" fills a []string field. Null leaves are skipped and leave the field
// at its default.
package fields

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/pkg/tree"
	"github.com/mitchellh/mapstructure"
)

// Policy selects how unknown fields and invalid values are handled.
type Policy int

const (
	// Strict fails the load on the first unknown field or invalid value.
	Strict Policy = iota
	// Tolerant logs unknown fields and invalid values and keeps the default
	// value of the affected field.
	Tolerant
)

func (p Policy) String() string {
	if p == Tolerant {
		return "tolerant"
	}
	return "strict"
}

// FieldError reports a failed load of one node.
type FieldError struct {
	Owner    string
	Location tree.Location
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Owner, e.Location, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Loader fills structs from nodes according to its Policy.
type Loader struct {
	policy Policy
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by the Tolerant policy.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader with the given policy.
func New(policy Policy, opts ...Option) *Loader {
	l := &Loader{
		policy: policy,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the loader's policy.
func (l *Loader) Policy() Policy {
	return l.policy
}

// Load populates target, which must be a non-nil pointer to a struct, from
// the children of node. Field names are matched through `mapstructure` tags.
func (l *Loader) Load(target any, node *tree.Node) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("fields: target must be a non-nil pointer, got %T", target)
	}
	if node == nil {
		return nil
	}

	entries := Entries(node)
	if l.policy == Tolerant {
		l.loadTolerant(rv, node, entries)
		return nil
	}

	input := make(map[string]any, len(entries))
	for _, e := range entries {
		input[e.Key] = e.Value
	}
	dec, err := newDecoder(target, nil)
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return &FieldError{Owner: node.Key, Location: node.Location, Err: err}
	}
	return nil
}

func (l *Loader) loadTolerant(rv reflect.Value, node *tree.Node, entries []Entry) {
	for _, e := range entries {
		scratch := reflect.New(rv.Elem().Type())
		scratch.Elem().Set(rv.Elem())

		md := &mapstructure.Metadata{}
		dec, err := newDecoder(scratch.Interface(), md)
		if err != nil {
			l.logger.Warn("Cannot load field", "owner", node.Key, "field", e.Key, "error", err)
			return
		}
		if err := dec.Decode(map[string]any{e.Key: e.Value}); err != nil {
			l.logger.Warn("Invalid field value, keeping default",
				"owner", node.Key,
				"field", e.Key,
				"location", node.Location.String(),
				"error", err,
			)
			continue
		}
		if len(md.Unused) > 0 {
			l.logger.Warn("Ignoring unknown field",
				"owner", node.Key,
				"field", e.Key,
				"location", node.Location.String(),
			)
			continue
		}
		rv.Elem().Set(scratch.Elem())
	}
}

// Entry is one field of a node in source order.
type Entry struct {
	Key   string
	Value any // string or map[string]any
}

// Entries converts the children of node into field entries. Null leaves and
// removal markers are skipped; a repeated key keeps the last value.
func Entries(node *tree.Node) []Entry {
	out := make([]Entry, 0, len(node.Children))
	index := make(map[string]int, len(node.Children))
	for _, c := range node.Children {
		if _, ok := tree.IsRemoval(c.Key); ok {
			continue
		}
		var v any
		switch {
		case len(c.Children) > 0:
			v = toMap(c)
		case c.Value != "":
			v = c.Value
		default:
			continue
		}
		if i, ok := index[c.Key]; ok {
			out[i].Value = v
			continue
		}
		index[c.Key] = len(out)
		out = append(out, Entry{Key: c.Key, Value: v})
	}
	return out
}

func toMap(n *tree.Node) map[string]any {
	entries := Entries(n)
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}

func newDecoder(target any, md *mapstructure.Metadata) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		Metadata:         md,
		ErrorUnused:      md == nil,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			commaListHook,
		),
	})
}

// commaListHook splits "a, b, c" into a trimmed []string for slice targets.
func commaListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() == reflect.Uint8 {
		return data, nil
	}
	parts := strings.Split(reflect.ValueOf(data).String(), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
