// Package loader reads XCSP3 documents from a billy filesystem.
//
// Files ending in ".lzma" are decompressed transparently. Both the legacy
// LZMA ("lzma alone") container and the xz container are accepted; the
// container is detected from the stream header, not from the file name.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// CompressedSuffix marks files that Load decompresses.
const CompressedSuffix = ".lzma"

// ErrNotFound is returned when the requested file does not exist.
var ErrNotFound = errors.New("loader: file not found")

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// IsCompressed reports whether name carries the compressed suffix.
func IsCompressed(name string) bool {
	return strings.HasSuffix(name, CompressedSuffix)
}

// Load returns the document stored at name, decompressed when name ends in
// ".lzma".
func Load(fsys billy.Basic, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("loader: open %q: %w", name, err)
	}
	defer f.Close()

	if !IsCompressed(name) {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("loader: read %q: %w", name, err)
		}
		return data, nil
	}
	data, err := Decompress(f)
	if err != nil {
		return nil, fmt.Errorf("loader: decompress %q: %w", name, err)
	}
	return data, nil
}

// Decompress reads an LZMA or xz stream to the end.
func Decompress(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	var dec io.Reader
	if bytes.Equal(head, xzMagic) {
		dec, err = xz.NewReader(br)
	} else {
		dec, err = lzma.NewReader(br)
	}
	if err != nil {
		return nil, err
	}
	return io.ReadAll(dec)
}

// Save writes data to name, creating parent directories as needed.
func Save(fsys billy.Filesystem, name string, data []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("loader: mkdir %q: %w", dir, err)
		}
	}
	if err := util.WriteFile(fsys, name, data, 0o644); err != nil {
		return fmt.Errorf("loader: write %q: %w", name, err)
	}
	return nil
}

// OutputName returns the ".cpo" file name for an input path:
// "dir/queens.xml.lzma" gives "queens.cpo".
func OutputName(input, suffix string) string {
	base := path.Base(strings.ReplaceAll(input, string(os.PathSeparator), "/"))
	base = strings.TrimSuffix(base, CompressedSuffix)
	base = strings.TrimSuffix(base, ".xml")
	return base + suffix
}
