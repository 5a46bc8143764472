package logio

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// Source is the minimal random-access view the binary search and windowed
// read operate over. Plain log files satisfy it directly; compressed
// inputs are decompressed once into memory since gzip/zstd streams are
// not seekable, then served from there.
type Source interface {
	io.ReaderAt
	Size() int64
	Close() error
}

type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *fileSource) Size() int64                              { return s.size }
func (s *fileSource) Close() error                              { return s.f.Close() }

type memSource struct {
	*bytes.Reader
	closeFn func() error
}

func (s *memSource) Size() int64 { return int64(s.Reader.Len()) }
func (s *memSource) Close() error {
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

// OpenSource opens path, transparently decompressing it if its extension
// names a compressed format the engine supports. Plain files are opened
// for true random access; compressed files are fully inflated into memory
// first, since the windowed reader needs ReadAt semantics the compression
// codecs themselves cannot provide.
func OpenSource(path string) (Source, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return openCompressed(path, func(r io.Reader) (io.Reader, error) {
			return pgzip.NewReader(r)
		})
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return openCompressed(path, func(r io.Reader) (io.Reader, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return readerWithCloser{dec, func() error { dec.Close(); return nil }}, nil
		})
	case strings.HasSuffix(lower, ".7z"):
		return open7z(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		return &fileSource{f: f, size: info.Size()}, nil
	}
}

type readerWithCloser struct {
	io.Reader
	closeFn func() error
}

func openCompressed(path string, wrap func(io.Reader) (io.Reader, error)) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := wrap(f)
	if err != nil {
		return nil, err
	}
	if rc, ok := r.(readerWithCloser); ok {
		defer rc.closeFn()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &memSource{Reader: bytes.NewReader(data)}, nil
}

// open7z decompresses the first regular file member of a 7z archive, the
// same "first matching member wins" convention the teacher's tar parser
// uses for multi-member archives.
func open7z(path string) (Source, error) {
	rc, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	for _, file := range rc.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rdr, err := file.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rdr)
		rdr.Close()
		if err != nil {
			return nil, err
		}
		return &memSource{Reader: bytes.NewReader(data)}, nil
	}
	return nil, os.ErrNotExist
}
