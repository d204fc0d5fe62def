package delta

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

// ErrInvalid indicates that a Delta payload or document violates the op-list format.
var ErrInvalid = errors.New("invalid delta")

// MaxLength is the largest retain or delete length a document may carry.
const MaxLength = math.MaxInt32

// Kind identifies a Delta operation.
type Kind string

const (
	KindInsert Kind = "insert"
	KindRetain Kind = "retain"
	KindDelete Kind = "delete"
)

// Attributes holds the formatting applied to the characters or embed of an operation.
// Toggle attributes are either true or absent; false is never stored.
type Attributes map[string]any

// Embed is a non-text insert, e.g. {"image": "https://example.com/a.png"}.
type Embed map[string]any

// Op is a single Delta operation.
type Op struct {
	Kind  Kind
	Text  string     // insert text
	Embed Embed      // insert embed; mutually exclusive with Text
	Count int        // retain/delete length
	Attrs Attributes // optional
}

// Document is an ordered list of operations. An empty list is a valid empty document.
type Document struct {
	Ops []Op
}

// Insert returns a text insert op.
func Insert(text string, attrs Attributes) Op {
	return Op{Kind: KindInsert, Text: text, Attrs: cleanAttributes(attrs)}
}

// InsertEmbed returns an embed insert op.
func InsertEmbed(embed Embed, attrs Attributes) Op {
	return Op{Kind: KindInsert, Embed: embed, Attrs: cleanAttributes(attrs)}
}

// Retain returns a retain op.
func Retain(count int, attrs Attributes) Op {
	return Op{Kind: KindRetain, Count: count, Attrs: cleanAttributes(attrs)}
}

// Delete returns a delete op.
func Delete(count int) Op {
	return Op{Kind: KindDelete, Count: count}
}

// IsText reports whether op inserts literal text.
func (op Op) IsText() bool {
	return op.Kind == KindInsert && op.Embed == nil
}

// Validate checks the invariants of a single operation.
func (op Op) Validate() error {
	switch op.Kind {
	case KindInsert:
		if op.Count != 0 {
			return fmt.Errorf("%w: insert must not carry a count", ErrInvalid)
		}
		if op.Embed != nil {
			if op.Text != "" {
				return fmt.Errorf("%w: insert has both text and embed", ErrInvalid)
			}
			if len(op.Embed) == 0 {
				return fmt.Errorf("%w: insert embed must not be empty", ErrInvalid)
			}
			if err := validateValue(map[string]any(op.Embed)); err != nil {
				return fmt.Errorf("%w: embed: %v", ErrInvalid, err)
			}
		} else if op.Text == "" {
			return fmt.Errorf("%w: insert text must not be empty", ErrInvalid)
		} else if !utf8.ValidString(op.Text) {
			return fmt.Errorf("%w: insert text is not valid UTF-8", ErrInvalid)
		}
	case KindRetain, KindDelete:
		if op.Count < 0 {
			return fmt.Errorf("%w: %s length must not be negative, got %d", ErrInvalid, op.Kind, op.Count)
		}
		if op.Count > MaxLength {
			return fmt.Errorf("%w: %s length %d is out of range", ErrInvalid, op.Kind, op.Count)
		}
		if op.Text != "" || op.Embed != nil {
			return fmt.Errorf("%w: %s must not carry content", ErrInvalid, op.Kind)
		}
		if op.Kind == KindDelete && len(op.Attrs) > 0 {
			return fmt.Errorf("%w: delete must not carry attributes", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown operation kind %q", ErrInvalid, op.Kind)
	}

	return op.Attrs.validate()
}

// Validate checks every operation of the document.
func (d Document) Validate() error {
	for i, op := range d.Ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}

// Equal compares two documents op for op. Numbers compare by value, so an attribute
// built as int64(1) equals one decoded from JSON.
func (d Document) Equal(other Document) bool {
	if len(d.Ops) != len(other.Ops) {
		return false
	}
	for i := range d.Ops {
		if !d.Ops[i].Equal(other.Ops[i]) {
			return false
		}
	}
	return true
}

// Equal compares two operations by value.
func (op Op) Equal(other Op) bool {
	if op.Kind != other.Kind || op.Text != other.Text || op.Count != other.Count {
		return false
	}
	if (op.Embed == nil) != (other.Embed == nil) {
		return false
	}
	if op.Embed != nil && !reflect.DeepEqual(normalizeGoValue(map[string]any(op.Embed)), normalizeGoValue(map[string]any(other.Embed))) {
		return false
	}
	return op.Attrs.Equal(other.Attrs)
}
