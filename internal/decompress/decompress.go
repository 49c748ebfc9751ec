// Package decompress detects compressed inputs and wraps them in a decoding
// reader.
package decompress

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm names a compression format.
type Algorithm string

const (
	None   Algorithm = ""
	Gzip   Algorithm = "gzip"
	Zstd   Algorithm = "zstd"
	LZ4    Algorithm = "lz4"
	Brotli Algorithm = "brotli"
	Snappy Algorithm = "snappy"
)

// ErrUnsupported reports an Algorithm without a decoder.
var ErrUnsupported = errors.New("unsupported compression algorithm")

// sniffLen covers the longest magic sequence.
const sniffLen = 10

type magic struct {
	algo  Algorithm
	bytes []byte
}

// Brotli streams carry no magic number and are recognized by extension only.
var magics = []magic{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Snappy, []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59}},
}

var extensions = map[string]Algorithm{
	".gz":     Gzip,
	".gzip":   Gzip,
	".zst":    Zstd,
	".zstd":   Zstd,
	".lz4":    LZ4,
	".br":     Brotli,
	".sz":     Snappy,
	".snappy": Snappy,
}

// Detect returns the algorithm whose magic bytes prefix head.
func Detect(head []byte) (Algorithm, bool) {
	for _, m := range magics {
		if bytes.HasPrefix(head, m.bytes) {
			return m.algo, true
		}
	}
	return None, false
}

// DetectExtension returns the algorithm implied by name's extension.
func DetectExtension(name string) (Algorithm, bool) {
	algo, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return algo, ok
}

// NewReader returns a reader decoding r with algo. None returns r unchanged.
func NewReader(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, ErrUnsupported
	}
}

// Open sniffs r and returns a reader yielding its decoded contents along with
// the detected algorithm. Data that is not recognized as compressed is
// returned as is. name is only consulted for formats without magic bytes.
func Open(name string, r io.Reader) (io.ReadCloser, Algorithm, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, None, err
	}
	algo, ok := Detect(head)
	if !ok {
		if ext, extOK := DetectExtension(name); extOK && ext == Brotli && len(head) > 0 {
			algo = Brotli
		}
	}
	rc, err := NewReader(algo, br)
	if err != nil {
		return nil, None, err
	}
	return rc, algo, nil
}
