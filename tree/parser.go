package tree

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Common errors returned by the binary reader.
var (
	errInvalidMagic       = errors.New("invalid FBX binary magic")
	errUnsupportedVersion = errors.New("unsupported FBX version: must be 7400 or later")
	errTruncated          = errors.New("unexpected end of FBX data")
	errBadArrayEncoding   = errors.New("unknown array attribute encoding")
)

// fbxMagic is the fixed 23-byte prelude of every binary FBX file: the magic
// string, a NUL, and the two unknown bytes 0x1A 0x00.
var fbxMagic = append([]byte("Kaydara FBX Binary  \x00"), 0x1a, 0x00)

// Load reads and parses a binary FBX file from the given path.
//
// Parameters:
//   - path: path to the .fbx file
//
// Returns:
//   - *Tree: the parsed node tree, version-tagged
//   - error: error if reading or parsing fails
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FBX file: %w", err)
	}
	return ParseBytes(data)
}

// Parse reads a binary FBX document from a reader.
//
// Parameters:
//   - r: reader providing binary FBX data
//
// Returns:
//   - *Tree: the parsed node tree, version-tagged
//   - error: error if reading or parsing fails
func Parse(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read FBX data: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses an in-memory binary FBX document.
//
// Parameters:
//   - data: the complete binary FBX document
//
// Returns:
//   - *Tree: the parsed node tree, version-tagged
//   - error: error if parsing fails
func ParseBytes(data []byte) (*Tree, error) {
	if len(data) < len(fbxMagic)+4 {
		return nil, errTruncated
	}
	if !bytes.Equal(data[:len(fbxMagic)], fbxMagic) {
		return nil, errInvalidMagic
	}
	rawVersion := binary.LittleEndian.Uint32(data[len(fbxMagic):])
	if rawVersion < 7400 {
		return nil, fmt.Errorf("%w (got %d)", errUnsupportedVersion, rawVersion)
	}
	version := Version7400
	if rawVersion >= 7500 {
		version = Version7500
	}

	p := &binParser{data: data, pos: len(fbxMagic) + 4, wide: version >= Version7500}
	var top []Node
	for {
		node, ok, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		top = append(top, node)
	}

	return New(version, top)
}

// binParser is a cursor over an in-memory binary FBX document.
type binParser struct {
	data []byte
	pos  int
	// wide is true for FBX >= 7500, where node record headers use 64-bit
	// fields instead of 32-bit ones.
	wide bool
}

func (p *binParser) remaining() int { return len(p.data) - p.pos }

func (p *binParser) take(n int) ([]byte, error) {
	if p.remaining() < n {
		return nil, errTruncated
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b, nil
}

func (p *binParser) u8() (uint8, error) {
	b, err := p.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (p *binParser) u32() (uint32, error) {
	b, err := p.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (p *binParser) u64() (uint64, error) {
	b, err := p.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// offset reads a node record header field, which is 32-bit in FBX 7.4 and
// 64-bit in FBX 7.5.
func (p *binParser) offset() (uint64, error) {
	if p.wide {
		return p.u64()
	}
	v, err := p.u32()
	return uint64(v), err
}

// parseNode reads one node record at the cursor. It returns ok=false when the
// record is a null terminator (all-zero header) marking the end of a sibling
// list.
func (p *binParser) parseNode() (Node, bool, error) {
	endOffset, err := p.offset()
	if err != nil {
		return Node{}, false, err
	}
	numAttrs, err := p.offset()
	if err != nil {
		return Node{}, false, err
	}
	if _, err := p.offset(); err != nil { // attribute list byte length, unused
		return Node{}, false, err
	}
	nameLen, err := p.u8()
	if err != nil {
		return Node{}, false, err
	}
	if endOffset == 0 {
		return Node{}, false, nil
	}
	if endOffset > uint64(len(p.data)) {
		return Node{}, false, fmt.Errorf("node record end offset %d beyond document size %d: %w",
			endOffset, len(p.data), errTruncated)
	}
	nameBytes, err := p.take(int(nameLen))
	if err != nil {
		return Node{}, false, err
	}
	node := Node{Name: string(nameBytes)}

	for i := uint64(0); i < numAttrs; i++ {
		v, err := p.parseAttribute()
		if err != nil {
			return Node{}, false, fmt.Errorf("node %q attribute %d: %w", node.Name, i, err)
		}
		node.Attrs = append(node.Attrs, v)
	}

	// Nested node list, terminated by a null record, runs to endOffset.
	for uint64(p.pos) < endOffset {
		child, ok, err := p.parseNode()
		if err != nil {
			return Node{}, false, err
		}
		if !ok {
			break
		}
		node.Children = append(node.Children, child)
	}
	if uint64(p.pos) != endOffset {
		return Node{}, false, fmt.Errorf("node %q: cursor %d does not match record end %d",
			node.Name, p.pos, endOffset)
	}

	return node, true, nil
}

// parseAttribute reads one typed attribute value at the cursor.
func (p *binParser) parseAttribute() (any, error) {
	typeCode, err := p.u8()
	if err != nil {
		return nil, err
	}
	switch typeCode {
	case 'C':
		v, err := p.u8()
		return v&1 != 0, err
	case 'Y':
		b, err := p.take(2)
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(b)), nil
	case 'I':
		v, err := p.u32()
		return int32(v), err
	case 'L':
		v, err := p.u64()
		return int64(v), err
	case 'F':
		v, err := p.u32()
		return math.Float32frombits(v), err
	case 'D':
		v, err := p.u64()
		return math.Float64frombits(v), err
	case 'S':
		n, err := p.u32()
		if err != nil {
			return nil, err
		}
		b, err := p.take(int(n))
		return string(b), err
	case 'R':
		n, err := p.u32()
		if err != nil {
			return nil, err
		}
		b, err := p.take(int(n))
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, b)
		return out, nil
	case 'b', 'i', 'l', 'f', 'd':
		return p.parseArrayAttribute(typeCode)
	default:
		return nil, fmt.Errorf("unknown attribute type code %q", typeCode)
	}
}

// parseArrayAttribute reads an array attribute, inflating zlib-compressed
// payloads when the encoding flag says so.
func (p *binParser) parseArrayAttribute(typeCode uint8) (any, error) {
	count, err := p.u32()
	if err != nil {
		return nil, err
	}
	encoding, err := p.u32()
	if err != nil {
		return nil, err
	}
	byteLen, err := p.u32()
	if err != nil {
		return nil, err
	}
	payload, err := p.take(int(byteLen))
	if err != nil {
		return nil, err
	}

	switch encoding {
	case 0:
		// raw
	case 1:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to open zlib array payload: %w", err)
		}
		defer zr.Close()
		payload, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to inflate array payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", errBadArrayEncoding, encoding)
	}

	elemSize := map[uint8]int{'b': 1, 'i': 4, 'l': 8, 'f': 4, 'd': 8}[typeCode]
	if len(payload) < int(count)*elemSize {
		return nil, fmt.Errorf("array payload too short: want %d elements of %d bytes, have %d bytes: %w",
			count, elemSize, len(payload), errTruncated)
	}

	switch typeCode {
	case 'b':
		out := make([]bool, count)
		for i := range out {
			out[i] = payload[i]&1 != 0
		}
		return out, nil
	case 'i':
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		return out, nil
	case 'l':
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(payload[i*8:]))
		}
		return out, nil
	case 'f':
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		return out, nil
	default: // 'd'
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
		}
		return out, nil
	}
}
