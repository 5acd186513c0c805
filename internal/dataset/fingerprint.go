package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Fingerprint identifies the exact bytes of a dataset directory.
type Fingerprint struct {
	SHA256 string `json:"sha256"`
	Files  int    `json:"files"`
}

// ComputeFingerprint hashes every regular file under dir: each file's
// slash-separated relative path followed by its bytes, in path order.
func ComputeFingerprint(dir string) (Fingerprint, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return Fingerprint{}, fmt.Errorf("walk dataset dir: %w", err)
	}

	rels := make([]string, len(paths))
	byRel := make(map[string]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return Fingerprint{}, fmt.Errorf("relative path: %w", err)
		}
		rel = filepath.ToSlash(rel)
		rels[i] = rel
		byRel[rel] = p
	}
	sort.Strings(rels)

	h := sha256.New()
	for _, rel := range rels {
		io.WriteString(h, rel)
		f, err := os.Open(byRel[rel])
		if err != nil {
			return Fingerprint{}, fmt.Errorf("open %s: %w", rel, err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return Fingerprint{}, fmt.Errorf("hash %s: %w", rel, err)
		}
	}

	return Fingerprint{SHA256: hex.EncodeToString(h.Sum(nil)), Files: len(rels)}, nil
}
