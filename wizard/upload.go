package wizard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the size ceiling for uploaded images.
const MaxUploadBytes = 5 << 20

// Upload errors. Their messages are shown next to the file field.
var (
	ErrNotImage     = &userError{msg: "請上傳圖片檔案"}
	ErrFileTooLarge = &userError{msg: "檔案大小不能超過 5MB"}
	ErrEmptyFile    = &userError{msg: "檔案內容為空"}
)

// UploadOptions bounds an upload.
type UploadOptions struct {
	MaxBytes   int64
	MIMEPrefix string
}

// DefaultUploadOptions accepts images up to 5 MB.
func DefaultUploadOptions() UploadOptions {
	return UploadOptions{MaxBytes: MaxUploadBytes, MIMEPrefix: "image/"}
}

// EncodeDataURL reads at most opts.MaxBytes from r and returns a base64
// data URL. The MIME type comes from declared, then the file name
// extension, then content sniffing. Nothing beyond the ceiling is
// buffered.
func EncodeDataURL(r io.Reader, name, declared string, opts UploadOptions) (string, error) {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = MaxUploadBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(data)) > opts.MaxBytes {
		return "", ErrFileTooLarge
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	mt := detectMIME(name, declared, data)
	if opts.MIMEPrefix != "" && !strings.HasPrefix(mt, opts.MIMEPrefix) {
		return "", ErrNotImage
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// LoadImageFile checks the size and type of the file at path before
// reading it, then encodes it as a data URL.
func LoadImageFile(path string) (string, error) {
	opts := DefaultUploadOptions()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > opts.MaxBytes {
		return "", ErrFileTooLarge
	}
	return EncodeDataURL(f, filepath.Base(path), "", opts)
}

// DecodeDataURL splits a data URL into its MIME type and payload.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URL has no payload")
	}
	mt, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return mt, []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return mt, data, nil
}

// CheckDataURL applies the upload limits to an already encoded data URL:
// it must decode, be non-empty, carry an image MIME type and fit in
// MaxUploadBytes.
func CheckDataURL(s string) error {
	mt, data, err := DecodeDataURL(s)
	if err != nil {
		return err
	}
	switch {
	case len(data) == 0:
		return ErrEmptyFile
	case !strings.HasPrefix(mt, "image/"):
		return ErrNotImage
	case len(data) > MaxUploadBytes:
		return ErrFileTooLarge
	}
	return nil
}

func detectMIME(name, declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	if ext := filepath.Ext(name); ext != "" {
		if mt := mime.TypeByExtension(strings.ToLower(ext)); mt != "" {
			mt, _, _ = strings.Cut(mt, ";")
			return mt
		}
	}
	mt, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return mt
}
