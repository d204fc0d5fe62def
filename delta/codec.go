package delta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
)

// Decode parses and validates a Delta JSON payload of the form {"ops": [...]}.
// Decoding is strict: any malformed op rejects the whole payload with an error
// wrapping ErrInvalid. Keys other than "ops" at the top level are ignored.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return Document{}, fmt.Errorf("%w: malformed JSON: %v", ErrInvalid, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("%w: unexpected data after JSON value", ErrInvalid)
	}

	object, ok := root.(map[string]any)
	if !ok {
		return Document{}, fmt.Errorf("%w: payload must be a JSON object", ErrInvalid)
	}
	rawOps, ok := object["ops"]
	if !ok {
		return Document{}, fmt.Errorf("%w: missing ops", ErrInvalid)
	}
	items, ok := rawOps.([]any)
	if !ok {
		return Document{}, fmt.Errorf("%w: ops must be an array", ErrInvalid)
	}

	ops := make([]Op, 0, len(items))
	for i, item := range items {
		op, err := decodeOp(item)
		if err != nil {
			return Document{}, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}

	return Document{Ops: ops}, nil
}

// DecodeString is Decode for string payloads.
func DecodeString(data string) (Document, error) {
	return Decode([]byte(data))
}

// Encode validates the document and serializes it to canonical JSON. The output is
// byte-identical for equal documents.
func Encode(doc Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
}

// Canonicalize decodes a payload and re-encodes it in canonical form.
func Canonicalize(data []byte) ([]byte, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Encode(doc)
}

// MarshalJSON writes {"ops":[...]}; an empty document encodes as {"ops":[]}.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ops":[`)
	for i, op := range d.Ops {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, err := op.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		buf.Write(encoded)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes strictly, see Decode.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// MarshalJSON writes the Quill wire form of a single op, discriminator first.
func (op Op) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	switch op.Kind {
	case KindInsert:
		buf.WriteString(`"insert":`)
		var content any = op.Text
		if op.Embed != nil {
			content = map[string]any(op.Embed)
		}
		if err := writeValue(&buf, content); err != nil {
			return nil, err
		}
	case KindRetain, KindDelete:
		buf.WriteString(strconv.Quote(string(op.Kind)))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(op.Count))
	default:
		return nil, fmt.Errorf("%w: unknown operation kind %q", ErrInvalid, op.Kind)
	}

	if len(op.Attrs) > 0 {
		buf.WriteString(`,"attributes":`)
		if err := writeValue(&buf, map[string]any(op.Attrs)); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeValue encodes without HTML escaping; map keys come out sorted.
func writeValue(buf *bytes.Buffer, value any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func decodeOp(item any) (Op, error) {
	object, ok := item.(map[string]any)
	if !ok {
		return Op{}, fmt.Errorf("%w: operation must be an object", ErrInvalid)
	}

	var kinds []Kind
	for _, key := range slices.Sorted(maps.Keys(object)) {
		switch key {
		case string(KindInsert), string(KindRetain), string(KindDelete):
			kinds = append(kinds, Kind(key))
		case "attributes":
		default:
			return Op{}, fmt.Errorf("%w: unknown operation key %q", ErrInvalid, key)
		}
	}
	if len(kinds) != 1 {
		return Op{}, fmt.Errorf("%w: operation must have exactly one of insert, retain, delete", ErrInvalid)
	}

	attrs, err := decodeAttributes(object["attributes"])
	if err != nil {
		return Op{}, err
	}

	op := Op{Kind: kinds[0], Attrs: attrs}
	switch op.Kind {
	case KindInsert:
		switch content := object["insert"].(type) {
		case string:
			op.Text = content
		case map[string]any:
			op.Embed = Embed(normalizeJSONValue(content).(map[string]any))
		default:
			return Op{}, fmt.Errorf("%w: insert must be a string or an embed object", ErrInvalid)
		}
	case KindRetain, KindDelete:
		count, err := decodeCount(object[string(op.Kind)])
		if err != nil {
			return Op{}, fmt.Errorf("%w: %s %v", ErrInvalid, op.Kind, err)
		}
		op.Count = count
	}

	if err := op.Validate(); err != nil {
		return Op{}, err
	}
	return op, nil
}

func decodeCount(value any) (int, error) {
	number, ok := value.(json.Number)
	if !ok {
		return 0, fmt.Errorf("length must be a number")
	}
	count, err := strconv.ParseInt(number.String(), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("length must be an integer, got %s", number)
	}
	return int(count), nil
}

func decodeAttributes(value any) (Attributes, error) {
	if value == nil {
		return nil, nil
	}
	object, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: attributes must be an object", ErrInvalid)
	}
	normalized := normalizeJSONValue(object).(map[string]any)
	return cleanAttributes(Attributes(normalized)), nil
}
