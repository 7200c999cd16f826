package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// File is one local file offered to the controller.
type File struct {
	Name        string
	ContentType string
	Size        int64

	// Open returns a fresh reader over the file contents.
	Open func() (io.ReadCloser, error)
}

// BytesFile wraps in-memory data.
func BytesFile(name string, data []byte) File {
	return File{
		Name:        name,
		ContentType: detectContentType(name, data),
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// OpenFile describes a file on disk. The contents are read again on upload.
func OpenFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	head, err := readHead(path)
	if err != nil {
		return File{}, err
	}

	return File{
		Name:        filepath.Base(path),
		ContentType: detectContentType(path, head),
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return head[:n], nil
}

// detectContentType prefers the extension and falls back to sniffing.
func detectContentType(name string, head []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	if len(head) == 0 {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(head))
	if err != nil {
		return ""
	}
	return mediaType
}
