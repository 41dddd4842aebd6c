package lazylist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/lazykit/errors"
)

// Debug describes the current materialization state without pulling
// anything: the strict prefix, the active source and the pending queue.
func (l *List[T]) Debug() string {
	var b strings.Builder
	b.WriteString("<lazylist ")
	if l.opts.name != "" {
		fmt.Fprintf(&b, "%q ", l.opts.name)
	}
	fmt.Fprintf(&b, "%v ", l.strict)
	if l.active == nil {
		b.WriteString("none")
	} else {
		b.WriteString(describe(l.active))
	}
	b.WriteString(" [")
	for i, e := range l.pending {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(describe(e))
	}
	b.WriteString("]>")
	return b.String()
}

func describe[T any](e *entry[T]) string {
	if e.kind == KindSequence {
		return fmt.Sprintf("%v", e.items)
	}
	return "<iterator " + e.id + ">"
}

// String materializes everything and formats the elements like a slice.
func (l *List[T]) String() string {
	if err := l.ensure(context.Background(), all); err != nil {
		return fmt.Sprintf("%v (incomplete: %v)", l.strict, err)
	}
	return fmt.Sprint(l.strict)
}

// Format implements fmt.Formatter by materializing everything and
// formatting the elements as a slice. %s is treated as %v.
func (l *List[T]) Format(f fmt.State, verb rune) {
	if err := l.ensure(context.Background(), all); err != nil {
		fmt.Fprintf(f, "%%!%c(%v)", verb, err)
		return
	}
	if verb == 's' {
		verb = 'v'
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), l.strict)
}

// Hash always fails: lists are mutable.
func (l *List[T]) Hash() (uint64, error) {
	return 0, apperrors.Unhashable("lazylist.List")
}

func (l *List[T]) elements() ([]T, error) {
	if err := l.ensure(context.Background(), all); err != nil {
		return nil, err
	}
	if l.strict == nil {
		return []T{}, nil
	}
	return l.strict, nil
}

// MarshalJSON materializes everything and encodes the list as an array.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	items, err := l.elements()
	if err != nil {
		return nil, err
	}
	return json.Marshal(items)
}

// UnmarshalJSON replaces the contents with a decoded array. The result is
// fully strict.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	l.Clear()
	l.strict = items
	return nil
}

// MarshalYAML materializes everything and encodes the list as a sequence.
func (l *List[T]) MarshalYAML() (interface{}, error) {
	return l.elements()
}

// UnmarshalYAML replaces the contents with a decoded sequence. The result
// is fully strict.
func (l *List[T]) UnmarshalYAML(value *yaml.Node) error {
	var items []T
	if err := value.Decode(&items); err != nil {
		return err
	}
	l.Clear()
	l.strict = items
	return nil
}
