package loader

import (
	"bytes"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

const doc = `<instance type="CSP"><variables><var id="x"> 1..3 </var></variables></instance>`

func compressLZMA(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func compressXZ(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoad_Plain(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "in/simple.xml", []byte(doc), 0o644))
	got, err := Load(fs, "in/simple.xml")
	require.NoError(t, err)
	assert.Equal(t, doc, string(got))
}

func TestLoad_Compressed(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "a.xml.lzma", compressLZMA(t, []byte(doc)), 0o644))
	require.NoError(t, util.WriteFile(fs, "b.xml.lzma", compressXZ(t, []byte(doc)), 0o644))

	for _, name := range []string{"a.xml.lzma", "b.xml.lzma"} {
		got, err := Load(fs, name)
		require.NoError(t, err, name)
		assert.Equal(t, doc, string(got), name)
	}
}

func TestLoad_CorruptCompressed(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "bad.lzma", []byte("not compressed"), 0o644))
	_, err := Load(fs, "bad.lzma")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(memfs.New(), "missing.xml")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing.xml")
}

func TestSave_CreatesDirectories(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, Save(fs, "out/deep/q.cpo", []byte("// Variables\n")))
	got, err := Load(fs, "out/deep/q.cpo")
	require.NoError(t, err)
	assert.Equal(t, "// Variables\n", string(got))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "queens.cpo", OutputName("dir/queens.xml.lzma", ".cpo"))
	assert.Equal(t, "queens.cpo", OutputName("queens.xml", ".cpo"))
	assert.Equal(t, "model.out", OutputName("/abs/model", ".out"))
	assert.True(t, IsCompressed("x.xml.lzma"))
	assert.False(t, IsCompressed("x.xml"))
}
