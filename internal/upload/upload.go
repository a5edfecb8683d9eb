// Package upload stores post images on disk under the static uploads directory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// URLPrefix is where the static file mount serves uploaded files.
const URLPrefix = "/static/uploads/"

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Handler saves uploaded images into Dir.
type Handler struct {
	Dir string
}

// New returns a Handler writing to dir. The directory is created on first save.
func New(dir string) *Handler {
	return &Handler{Dir: dir}
}

// Allowed reports whether filename has an accepted image extension, ignoring case.
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// SecureFilename reduces a client-supplied name to a safe flat file name. Non-ASCII letters are
// folded to their ASCII base, path separators and unsafe characters are removed. The result may
// be empty.
func SecureFilename(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeChars.ReplaceAllString(ascii, "")
	return strings.Trim(ascii, "._")
}

// Source tells where a post image came from.
type Source string

const (
	SourceNone Source = "none"
	SourceURL  Source = "url"
	SourceFile Source = "file"
)

// HandleImage resolves the image of a new post. An uploaded file with an allowed extension wins
// and is saved to disk; otherwise a non-empty url is returned as given; otherwise nil.
// Files with other extensions are ignored.
func (h *Handler) HandleImage(file *multipart.FileHeader, url string) (*string, Source, error) {
	if file != nil && Allowed(file.Filename) {
		name := SecureFilename(file.Filename)
		if Allowed(name) {
			saved, err := h.save(file, name)
			if err != nil {
				return nil, SourceNone, err
			}
			ref := URLPrefix + saved
			return &ref, SourceFile, nil
		}
	}
	if url != "" {
		return &url, SourceURL, nil
	}
	return nil, SourceNone, nil
}

// Remove deletes a file saved by HandleImage. References outside URLPrefix are left alone.
func (h *Handler) Remove(ref string) error {
	if !strings.HasPrefix(ref, URLPrefix) {
		return nil
	}
	name := path.Base(strings.TrimPrefix(ref, URLPrefix))
	if name == "." || name == "/" || name == ".." {
		return nil
	}
	if err := os.Remove(filepath.Join(h.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload %s: %w", name, err)
	}
	return nil
}

func (h *Handler) save(file *multipart.FileHeader, name string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return h.write(name, src)
}

// write copies src into a new file under Dir. A failed write leaves nothing behind.
func (h *Handler) write(name string, src io.Reader) (string, error) {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, name, err := h.create(name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(h.Dir, name)
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close upload %s: %w", name, err)
	}
	return name, nil
}

// create opens a new file for name, adding a short random suffix when the name is taken.
func (h *Handler) create(name string) (*os.File, string, error) {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for attempt := 0; attempt < 5; attempt++ {
		f, err := os.OpenFile(filepath.Join(h.Dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create upload %s: %w", candidate, err)
		}
		candidate = base + "-" + uuid.NewString()[:8] + ext
	}
	return nil, "", fmt.Errorf("create upload %s: no free name", name)
}
