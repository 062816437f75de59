package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"linelimit/internal/diag"
	"linelimit/internal/rules"
	"linelimit/internal/settings"
	"linelimit/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a cache key.
type Digest [32]byte

// DiskCache stores per-file check results keyed by content, rules and
// settings. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic without its file ID.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. Entries written
// with another schema are treated as missing.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// cacheKey hashes everything that influences the diagnostics of file:
// its content, the rule set and the text of every candidate.
func cacheKey(ctx context.Context, file *source.File, policies []rules.Policy, candidates []settings.AdditionalText) (Digest, error) {
	h := sha256.New()
	h.Write(file.Hash[:])
	for _, p := range policies {
		h.Write([]byte{0})
		h.Write([]byte(p.ID()))
	}
	for _, c := range candidates {
		text, err := c.Text(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Digest{}, ctxErr
			}
			text = "\x00unreadable"
		}
		h.Write([]byte{1})
		h.Write([]byte(c.Path()))
		h.Write([]byte{0})
		h.Write([]byte(text))
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

func toPayload(path string, items []*diag.Diagnostic) *DiskPayload {
	p := &DiskPayload{Path: path, Diagnostics: make([]CachedDiagnostic, 0, len(items))}
	for _, d := range items {
		p.Diagnostics = append(p.Diagnostics, CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return p
}

func fromPayload(p *DiskPayload, id source.FileID, bag *diag.Bag) {
	for _, cd := range p.Diagnostics {
		bag.Add(&diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: id, Start: cd.Start, End: cd.End},
		})
	}
}
