package fbx

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyDocument returns the smallest valid binary document: magic, version
// and the top-level null record.
func emptyDocument(version uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("Kaydara FBX Binary  \x00")
	buf.Write([]byte{0x1a, 0x00})
	binary.Write(&buf, binary.LittleEndian, version)
	if version >= 7500 {
		buf.Write(make([]byte, 25))
	} else {
		buf.Write(make([]byte, 13))
	}
	return buf.Bytes()
}

func TestParseBytesEmptyDocument(t *testing.T) {
	doc, err := ParseBytes(emptyDocument(7400))
	require.NoError(t, err)
	assert.Empty(t, doc.Objects())
	assert.Empty(t, doc.Connections())
}

func TestParseReader(t *testing.T) {
	doc, err := Parse(bytes.NewReader(emptyDocument(7500)))
	require.NoError(t, err)
	assert.Empty(t, doc.Objects())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fbx")
	require.NoError(t, os.WriteFile(path, emptyDocument(7400), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Objects())

	_, err = Load(filepath.Join(t.TempDir(), "missing.fbx"))
	assert.Error(t, err)
}

func TestParseBytesRejectsGarbage(t *testing.T) {
	_, err := ParseBytes([]byte("not an fbx file"))
	assert.Error(t, err)
}
