package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeString(`{"ops":[
		{"insert":"Hello "},
		{"insert":"world","attributes":{"bold":true,"link":"https://example.com"}},
		{"insert":{"image":"https://example.com/a.png"}},
		{"insert":"\n","attributes":{"header":2}},
		{"retain":5,"attributes":{"color":null}},
		{"delete":3}
	]}`)
	require.NoError(t, err)

	assert.Equal(t, Document{Ops: []Op{
		{Kind: KindInsert, Text: "Hello "},
		{Kind: KindInsert, Text: "world", Attrs: Attributes{"bold": true, "link": "https://example.com"}},
		{Kind: KindInsert, Embed: Embed{"image": "https://example.com/a.png"}},
		{Kind: KindInsert, Text: "\n", Attrs: Attributes{"header": 2}},
		{Kind: KindRetain, Count: 5, Attrs: Attributes{"color": nil}},
		{Kind: KindDelete, Count: 3},
	}}, doc)
}

func TestDecodeEmptyDocument(t *testing.T) {
	doc, err := DecodeString(`{"ops":[]}`)
	require.NoError(t, err)
	assert.Empty(t, doc.Ops)
}

func TestDecodeNormalizesAttributes(t *testing.T) {
	doc, err := DecodeString(`{"ops":[{"insert":"a","attributes":{"bold":false,"italic":true}},{"insert":"b","attributes":{}},{"insert":"c","attributes":null},{"delete":1,"attributes":{"bold":false}}]}`)
	require.NoError(t, err)

	require.Len(t, doc.Ops, 4)
	assert.Equal(t, Attributes{"italic": true}, doc.Ops[0].Attrs)
	assert.Nil(t, doc.Ops[1].Attrs)
	assert.Nil(t, doc.Ops[2].Attrs)
	assert.Nil(t, doc.Ops[3].Attrs)
}

func TestDecodeNumbers(t *testing.T) {
	doc, err := DecodeString(`{"ops":[{"insert":"x","attributes":{"size":1.5,"header":3}}]}`)
	require.NoError(t, err)

	assert.Equal(t, 1.5, doc.Ops[0].Attrs["size"])
	assert.Equal(t, 3, doc.Ops[0].Attrs["header"])
	assert.Equal(t, 3, doc.Ops[0].Attrs.Int(AttrHeader, 0))
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":                 `not json`,
		"missing ops":              `{"notops":[]}`,
		"ops not array":            `{"ops":"not-an-array"}`,
		"ops null":                 `{"ops":null}`,
		"top level array":          `[{"insert":"a"}]`,
		"trailing data":            `{"ops":[]} {}`,
		"op not object":            `{"ops":["a"]}`,
		"no discriminator":         `{"ops":[{"attributes":{"bold":true}}]}`,
		"two discriminators":       `{"ops":[{"insert":"a","delete":1}]}`,
		"unknown key":              `{"ops":[{"insert":"a","foo":1}]}`,
		"empty insert":             `{"ops":[{"insert":""}]}`,
		"numeric insert":           `{"ops":[{"insert":5}]}`,
		"null insert":              `{"ops":[{"insert":null}]}`,
		"empty embed":              `{"ops":[{"insert":{}}]}`,
		"negative retain":          `{"ops":[{"retain":-1}]}`,
		"retain above max length":  `{"ops":[{"retain":2147483648}]}`,
		"delete overflowing int":   `{"ops":[{"delete":99999999999999999999}]}`,
		"fractional delete":        `{"ops":[{"delete":1.5}]}`,
		"string retain":            `{"ops":[{"retain":"3"}]}`,
		"attributes not object":    `{"ops":[{"insert":"a","attributes":"bold"}]}`,
		"delete with attributes":   `{"ops":[{"delete":2,"attributes":{"bold":true}}]}`,
		"bad op after good ops":    `{"ops":[{"insert":"a"},{"insert":"b"},{"retain":-5}]}`,
		"empty input":              ``,
		"attributes array payload": `{"ops":[{"insert":"a","attributes":[1]}]}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := DecodeString(payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Empty(t, doc.Ops)
		})
	}
}

func TestDecodeErrorNamesOffendingOp(t *testing.T) {
	_, err := DecodeString(`{"ops":[{"insert":"a"},{"retain":-5}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op 1")
}

func TestEncodeCanonical(t *testing.T) {
	doc := Document{Ops: []Op{
		Insert("Hello", Attributes{"link": "https://example.com/?a=1&b=<2>", "bold": true}),
		InsertEmbed(Embed{"image": "a.png"}, nil),
		Insert("\n", Attributes{AttrList: ListBullet, AttrIndent: 1}),
		Retain(4, nil),
		Delete(2),
	}}

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"ops":[{"insert":"Hello","attributes":{"bold":true,"link":"https://example.com/?a=1&b=<2>"}},{"insert":{"image":"a.png"}},{"insert":"\n","attributes":{"indent":1,"list":"bullet"}},{"retain":4},{"delete":2}]}`,
		string(data))

	again, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestEncodeEmptyDocument(t *testing.T) {
	data, err := Encode(Document{})
	require.NoError(t, err)
	assert.Equal(t, `{"ops":[]}`, string(data))
}

func TestEncodeRejectsInvalidDocument(t *testing.T) {
	overLimit := MaxLength
	overLimit++

	cases := map[string]Op{
		"empty insert":           {Kind: KindInsert},
		"false toggle":           {Kind: KindInsert, Text: "a", Attrs: Attributes{"bold": false}},
		"negative retain":        {Kind: KindRetain, Count: -1},
		"delete with attrs":      {Kind: KindDelete, Count: 1, Attrs: Attributes{"bold": true}},
		"unknown kind":           {Kind: "replace", Text: "a"},
		"text and embed":         {Kind: KindInsert, Text: "a", Embed: Embed{"image": "x"}},
		"unsupported value":      {Kind: KindInsert, Text: "a", Attrs: Attributes{"ch": make(chan int)}},
		"retain above max":       {Kind: KindRetain, Count: overLimit},
		"delete above max":       {Kind: KindDelete, Count: overLimit},
		"invalid utf8 text":      {Kind: KindInsert, Text: "a\xffb\n"},
		"invalid utf8 attr":      {Kind: KindInsert, Text: "a", Attrs: Attributes{AttrLink: "https://x.io/\xff"}},
		"invalid utf8 name":      {Kind: KindInsert, Text: "a", Attrs: Attributes{"\xfe": true}},
		"invalid utf8 embed":     {Kind: KindInsert, Embed: Embed{"image": map[string]any{"src": "\xff"}}},
		"invalid utf8 embed key": {Kind: KindInsert, Embed: Embed{"image": map[string]any{"\xff": "a"}}},
	}

	for name, op := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Encode(Document{Ops: []Op{op}})
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []Document{
		{},
		{Ops: []Op{Insert("Hello", nil), Insert("\n", Attributes{AttrHeader: 1})}},
		{Ops: []Op{
			Insert("bold", Attributes{AttrBold: true}),
			Insert(" and ", nil),
			Insert("italic", Attributes{AttrItalic: true}),
			Insert("\n", nil),
		}},
		{Ops: []Op{
			InsertEmbed(Embed{"image": "a.png", "meta": map[string]any{"w": 10, "tags": []any{"x", 2.5}}}, Attributes{"width": "50"}),
			Insert("\n", nil),
		}},
		{Ops: []Op{Retain(3, Attributes{"bold": true, "color": nil}), Delete(2), Insert("日本語 ✓", nil)}},
		{Ops: []Op{Insert("x", Attributes{AttrHeader: int64(2), "size": 1.25})}},
		{Ops: []Op{Retain(MaxLength, nil), Delete(MaxLength)}},
	}

	for i, doc := range docs {
		data, err := Encode(doc)
		require.NoError(t, err, "doc %d", i)

		decoded, err := Decode(data)
		require.NoError(t, err, "doc %d", i)
		assert.True(t, doc.Equal(decoded), "doc %d: %s", i, data)

		reencoded, err := Encode(decoded)
		require.NoError(t, err)
		assert.Equal(t, string(data), string(reencoded))
	}
}

func TestDecodeAcceptsMaxLength(t *testing.T) {
	doc, err := DecodeString(`{"ops":[{"retain":2147483647},{"delete":2147483647}]}`)
	require.NoError(t, err)
	assert.True(t, doc.Equal(Document{Ops: []Op{Retain(MaxLength, nil), Delete(MaxLength)}}))
}

func TestEncodedDocumentsAlwaysDecode(t *testing.T) {
	docs := []Document{
		{Ops: []Op{Retain(MaxLength, nil)}},
		{Ops: []Op{Insert("a\xffb\n", nil)}},
	}

	for i, doc := range docs {
		data, err := Encode(doc)
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalid, "doc %d", i)
			continue
		}
		decoded, err := Decode(data)
		require.NoError(t, err, "doc %d: %s", i, data)
		assert.True(t, doc.Equal(decoded), "doc %d: %s", i, data)
	}
}

func TestCanonicalize(t *testing.T) {
	out, err := Canonicalize([]byte(`{ "ops" : [ {"attributes":{"italic":true,"bold":true},"insert":"a"} ], "extra": 1 }`))
	require.NoError(t, err)
	assert.Equal(t, `{"ops":[{"insert":"a","attributes":{"bold":true,"italic":true}}]}`, string(out))

	_, err = Canonicalize([]byte(`{"ops":[{"insert":""}]}`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDocumentJSONInterfaces(t *testing.T) {
	var doc Document
	require.NoError(t, doc.UnmarshalJSON([]byte(`{"ops":[{"insert":"a\n"}]}`)))
	assert.Equal(t, []Op{Insert("a\n", nil)}, doc.Ops)

	assert.ErrorIs(t, doc.UnmarshalJSON([]byte(`{"ops":{}}`)), ErrInvalid)
}
