// Package audio derives content-addressed cache keys for synthesized speech
// and stores the resulting files on local disk. Synthesis itself happens
// elsewhere; this package only names, finds and keeps the bytes.
package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

// Default synthesis parameters.
const (
	DefaultVoice  = "default"
	DefaultRate   = "1.0"
	DefaultPitch  = "0"
	DefaultFormat = "mp3"
)

var fileNameRe = regexp.MustCompile(`^[0-9a-f]{64}\.(mp3|wav|ogg)$`)

var contentTypes = map[string]string{
	"mp3": "audio/mpeg",
	"wav": "audio/wav",
	"ogg": "audio/ogg",
}

// Params are the inputs that determine a synthesized audio file.
type Params struct {
	Text   string
	Voice  string
	Rate   string
	Pitch  string
	Format string
}

// WithDefaults fills empty fields from d.
func (p Params) WithDefaults(d Params) Params {
	if p.Voice == "" {
		p.Voice = d.Voice
	}
	if p.Rate == "" {
		p.Rate = d.Rate
	}
	if p.Pitch == "" {
		p.Pitch = d.Pitch
	}
	if p.Format == "" {
		p.Format = d.Format
	}
	p.Format = strings.ToLower(p.Format)
	return p
}

// Key returns the hex sha256 of "text|voice|rate|pitch|format" with the
// text trimmed.
func Key(p Params) string {
	raw := strings.Join([]string{strings.TrimSpace(p.Text), p.Voice, p.Rate, p.Pitch, p.Format}, "|")
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// FileName returns the cache file name for p.
func FileName(p Params) string {
	return Key(p) + "." + p.Format
}

// SupportedFormat reports whether format can be cached.
func SupportedFormat(format string) bool {
	_, ok := contentTypes[format]
	return ok
}

// ValidFileName reports whether name is a cache file name. Only these
// names are ever joined to the cache directory.
func ValidFileName(name string) bool {
	return fileNameRe.MatchString(name)
}

// ContentType returns the MIME type for a valid cache file name.
func ContentType(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Cache is a directory of content-addressed audio files.
type Cache struct {
	dir string
}

// NewCache creates the cache directory if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Has reports whether a valid file name is present in the cache.
func (c *Cache) Has(name string) bool {
	_, err := c.Path(name)
	return err == nil
}

// Path returns the file path for name. It returns a validation error for
// names that are not cache file names and domain.ErrNotFound when absent.
func (c *Cache) Path(name string) (string, error) {
	if !ValidFileName(name) {
		return "", domain.NewValidationError("filename", "not a cache file name")
	}
	p := filepath.Join(c.dir, name)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("stat audio file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", domain.ErrNotFound
	}
	return p, nil
}

// Store writes r to the cache under name. The file appears atomically.
func (c *Cache) Store(name string, r io.Reader) (int64, error) {
	if !ValidFileName(name) {
		return 0, domain.NewValidationError("filename", "not a cache file name")
	}

	tmp, err := os.CreateTemp(c.dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close audio: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, name)); err != nil {
		return 0, fmt.Errorf("rename audio: %w", err)
	}
	return n, nil
}
