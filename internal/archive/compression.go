package archive

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Compression identifies the container format of an archive file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// String returns the format name.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// DetectCompression inspects the leading bytes of a file.
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, bzip2Magic):
		return CompressionBzip2
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// Decompress returns the payload of raw, unwrapping it according to its
// magic bytes. Uncompressed input is returned as is.
func Decompress(raw []byte) ([]byte, Compression, error) {
	c := DetectCompression(raw)

	var r io.Reader
	switch c {
	case CompressionNone:
		return raw, c, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, c, fmt.Errorf("archive: gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	case CompressionBzip2:
		r = bzip2.NewReader(bytes.NewReader(raw))
	case CompressionXZ:
		xr, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, c, fmt.Errorf("archive: xz reader: %w", err)
		}
		r = xr
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, c, fmt.Errorf("archive: %s stream: %w", c, err)
	}

	return buf.Bytes(), c, nil
}
