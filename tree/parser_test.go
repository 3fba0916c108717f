package tree

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binNode is a test-side node spec serialized into the wire layout by
// encodeDocument.
type binNode struct {
	name     string
	attrs    []byte // pre-encoded attribute bytes
	numAttrs uint32
	children []binNode
}

func (n binNode) headerSize(wide bool) int {
	if wide {
		return 3*8 + 1
	}
	return 3*4 + 1
}

func (n binNode) size(wide bool) int {
	s := n.headerSize(wide) + len(n.name) + len(n.attrs)
	for _, c := range n.children {
		s += c.size(wide)
	}
	if len(n.children) > 0 {
		s += n.headerSize(wide) // null terminator record
	}
	return s
}

func (n binNode) write(buf *bytes.Buffer, pos int, wide bool) int {
	end := pos + n.size(wide)
	writeOffset := func(v uint64) {
		if wide {
			binary.Write(buf, binary.LittleEndian, v)
		} else {
			binary.Write(buf, binary.LittleEndian, uint32(v))
		}
	}
	writeOffset(uint64(end))
	writeOffset(uint64(n.numAttrs))
	writeOffset(uint64(len(n.attrs)))
	buf.WriteByte(byte(len(n.name)))
	buf.WriteString(n.name)
	buf.Write(n.attrs)
	pos += n.headerSize(wide) + len(n.name) + len(n.attrs)
	for _, c := range n.children {
		pos = c.write(buf, pos, wide)
	}
	if len(n.children) > 0 {
		buf.Write(make([]byte, n.headerSize(wide)))
		pos += n.headerSize(wide)
	}
	if pos != end {
		panic("test encoder: node size mismatch")
	}
	return pos
}

func encodeDocument(version uint32, nodes ...binNode) []byte {
	wide := version >= 7500
	var buf bytes.Buffer
	buf.Write(fbxMagic)
	binary.Write(&buf, binary.LittleEndian, version)
	pos := buf.Len()
	for _, n := range nodes {
		pos = n.write(&buf, pos, wide)
	}
	// Top-level null record ends the document.
	if wide {
		buf.Write(make([]byte, 25))
	} else {
		buf.Write(make([]byte, 13))
	}
	return buf.Bytes()
}

func attrInt64(v int64) []byte {
	var buf bytes.Buffer
	buf.WriteByte('L')
	binary.Write(&buf, binary.LittleEndian, v)
	return buf.Bytes()
}

func attrInt32(v int32) []byte {
	var buf bytes.Buffer
	buf.WriteByte('I')
	binary.Write(&buf, binary.LittleEndian, v)
	return buf.Bytes()
}

func attrString(s string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('S')
	binary.Write(&buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
	return buf.Bytes()
}

func attrFloat64Array(vals []float64, compressed bool) []byte {
	var payload bytes.Buffer
	for _, v := range vals {
		binary.Write(&payload, binary.LittleEndian, math.Float64bits(v))
	}
	data := payload.Bytes()
	encoding := uint32(0)
	if compressed {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		zw.Write(data)
		zw.Close()
		data = z.Bytes()
		encoding = 1
	}

	var buf bytes.Buffer
	buf.WriteByte('d')
	binary.Write(&buf, binary.LittleEndian, uint32(len(vals)))
	binary.Write(&buf, binary.LittleEndian, encoding)
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}

func attrInt32Array(vals []int32) []byte {
	var buf bytes.Buffer
	buf.WriteByte('i')
	binary.Write(&buf, binary.LittleEndian, uint32(len(vals)))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(len(vals)*4))
	for _, v := range vals {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestParseBytesMinimalDocument(t *testing.T) {
	doc := encodeDocument(7400,
		binNode{
			name: "Objects",
			children: []binNode{
				{
					name:     "Geometry",
					numAttrs: 3,
					attrs: concat(
						attrInt64(100),
						attrString("Cube\x00\x01Geometry"),
						attrString("Mesh"),
					),
					children: []binNode{
						{name: "Vertices", numAttrs: 1, attrs: attrFloat64Array([]float64{0, 0, 0, 1, 0, 0, 1, 1, 0}, false)},
						{name: "PolygonVertexIndex", numAttrs: 1, attrs: attrInt32Array([]int32{0, 1, -3})},
					},
				},
			},
		},
	)

	tr, err := ParseBytes(doc)
	require.NoError(t, err)
	assert.Equal(t, Version7400, tr.Version())

	objects, ok := tr.FirstChildByName(tr.Root(), "Objects")
	require.True(t, ok)
	geom, ok := tr.FirstChildByName(objects, "Geometry")
	require.True(t, ok)

	id, _ := tr.Attributes(geom)[0].Int64()
	assert.Equal(t, int64(100), id)

	vertices, ok := tr.FirstChildByName(geom, "Vertices")
	require.True(t, ok)
	vs, ok := tr.Attributes(vertices)[0].Float64Slice()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0, 1, 1, 0}, vs)

	pvi, ok := tr.FirstChildByName(geom, "PolygonVertexIndex")
	require.True(t, ok)
	is, ok := tr.Attributes(pvi)[0].Int32Slice()
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, -3}, is)
}

func TestParseBytesCompressedArray(t *testing.T) {
	want := []float64{1.5, -2.25, 1e9, 0}
	doc := encodeDocument(7400,
		binNode{name: "Vertices", numAttrs: 1, attrs: attrFloat64Array(want, true)},
	)

	tr, err := ParseBytes(doc)
	require.NoError(t, err)

	node, ok := tr.FirstChildByName(tr.Root(), "Vertices")
	require.True(t, ok)
	got, ok := tr.Attributes(node)[0].Float64Slice()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestParseBytesWideHeaders(t *testing.T) {
	doc := encodeDocument(7500,
		binNode{name: "Objects", children: []binNode{
			{name: "Model", numAttrs: 1, attrs: attrInt64(7)},
		}},
	)

	tr, err := ParseBytes(doc)
	require.NoError(t, err)
	assert.Equal(t, Version7500, tr.Version())

	objects, ok := tr.FirstChildByName(tr.Root(), "Objects")
	require.True(t, ok)
	model, ok := tr.FirstChildByName(objects, "Model")
	require.True(t, ok)
	id, _ := tr.Attributes(model)[0].Int64()
	assert.Equal(t, int64(7), id)
}

func TestParseBytesVersionTagging(t *testing.T) {
	// 7600 is unknown but still parses with wide headers and tags as 7500.
	doc := encodeDocument(7600, binNode{name: "N"})
	tr, err := ParseBytes(doc)
	require.NoError(t, err)
	assert.Equal(t, Version7500, tr.Version())
}

func TestParseBytesRejectsBadInput(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		doc := encodeDocument(7400, binNode{name: "N"})
		doc[0] = 'X'
		_, err := ParseBytes(doc)
		assert.ErrorIs(t, err, errInvalidMagic)
	})

	t.Run("old version", func(t *testing.T) {
		doc := encodeDocument(7300, binNode{name: "N"})
		_, err := ParseBytes(doc)
		assert.ErrorIs(t, err, errUnsupportedVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		doc := encodeDocument(7400, binNode{name: "N"})
		_, err := ParseBytes(doc[:len(doc)-8])
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseBytes(nil)
		assert.ErrorIs(t, err, errTruncated)
	})
}
