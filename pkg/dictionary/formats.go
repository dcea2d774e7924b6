package dictionary

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Source opens a word list for reading.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// wordListExtensions are the extensions expected for plain text word lists.
// Others are accepted with a warning.
var wordListExtensions = []string{"", ".txt", ".dic", ".lst", ".words"}

type fileSource struct {
	path string
}

// FileSource reads the word list at path.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Name() string { return s.path }

func (s fileSource) Open() (io.ReadCloser, error) {
	if err := ValidateWordList(s.path); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

type readerSource struct {
	name string
	r    io.Reader
}

// ReaderSource wraps an already open reader. Open may only be called once.
func ReaderSource(name string, r io.Reader) Source {
	return readerSource{name: name, r: r}
}

func (s readerSource) Name() string { return s.name }

func (s readerSource) Open() (io.ReadCloser, error) {
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}

// ValidateWordList checks that path is a non-empty regular file.
func ValidateWordList(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat word list %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("word list %s is not a regular file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("word list %s is empty", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	known := false
	for _, valid := range wordListExtensions {
		if ext == valid {
			known = true
			break
		}
	}
	if !known {
		log.Warnf("Word list %s has unexpected extension %q, reading it as plain text", path, ext)
	}

	log.Debugf("Word list %s validated (%d bytes)", path, info.Size())
	return nil
}

// LoadFile loads the word list at path synchronously.
func LoadFile(path string, expected int, progress func(percent int)) (*Dictionary, error) {
	return loadSource(context.Background(), FileSource(path), expected, progress)
}

func loadSource(ctx context.Context, src Source, expected int, progress func(int)) (*Dictionary, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	defer rc.Close()
	return load(ctx, src.Name(), rc, expected, progress)
}
