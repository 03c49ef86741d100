package filestorages

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// decompressingReader reads through an optional decoder and closes every layer on Close.
type decompressingReader struct {
	io.Reader
	closers []func() error
}

func (r *decompressingReader) Close() error {
	var errs []error
	for _, closeFn := range r.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newDecompressingReader sniffs the leading bytes of rc and wraps it with a gzip or zstd
// decoder when the content is compressed. Plain content is returned unchanged.
func newDecompressingReader(rc io.ReadCloser) (io.ReadCloser, error) {
	buffered := bufio.NewReader(rc)
	head, err := buffered.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		return &decompressingReader{Reader: gz, closers: []func() error{gz.Close, rc.Close}}, nil

	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		closeDecoder := func() error {
			dec.Close()
			return nil
		}
		return &decompressingReader{Reader: dec, closers: []func() error{closeDecoder, rc.Close}}, nil
	}

	return &decompressingReader{Reader: buffered, closers: []func() error{rc.Close}}, nil
}
