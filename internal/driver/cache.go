package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"scopelint/internal/diag"
	"scopelint/internal/directive"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

// Bump when DiskPayload changes shape or rule behaviour changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file lint results on disk, keyed by a digest of the
// file content, the project configuration and the rule selection.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry holds. Spans are stored as offsets
// and re-attached to the loaded file on a hit.
type DiskPayload struct {
	Schema     uint16
	Path       string
	Findings   []cachedFinding
	Directives []cachedDirective
}

type cachedFinding struct {
	Rule     uint8
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
}

type cachedDirective struct {
	Family uint8
	Scope  uint8
	Rule   uint8
	Start  uint32
	End    uint32
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
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

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := fmt.Sprintf("%x", key[:])
	// two-level fan-out keeps directories small
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes payload atomically (temp file + rename).
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. A missing entry or one written by another
// schema version is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// rename first so a concurrent reader never sees a half-deleted tree
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey digests everything a file's lint result depends on.
func cacheKey(file *source.File, t Target, proj *project.Project, salt project.Digest) project.Digest {
	parts := []string{t.Path, t.Kind.String()}
	for _, id := range t.Overrides {
		parts = append(parts, id.String())
	}
	return project.Combine(project.Digest(file.Hash), proj.Digest, salt, project.HashStrings(parts...))
}

func toPayload(path string, findings []diag.Finding, dirs []directive.Token) *DiskPayload {
	p := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Path:       path,
		Findings:   make([]cachedFinding, len(findings)),
		Directives: make([]cachedDirective, len(dirs)),
	}
	for i, f := range findings {
		p.Findings[i] = cachedFinding{
			Rule:     uint8(f.Rule),
			Severity: uint8(f.Severity),
			Start:    f.Span.Start,
			End:      f.Span.End,
			Message:  f.Message,
		}
	}
	for i, d := range dirs {
		p.Directives[i] = cachedDirective{
			Family: uint8(d.Kind.Family),
			Scope:  uint8(d.Kind.Scope),
			Rule:   uint8(d.Kind.Rule),
			Start:  d.Span.Start,
			End:    d.Span.End,
		}
	}
	return p
}

// fromPayload re-attaches a payload to file. Entries naming rules outside the
// vocabulary make the whole payload unusable.
func fromPayload(file *source.File, p *DiskPayload) ([]diag.Finding, []directive.Token, bool) {
	findings := make([]diag.Finding, len(p.Findings))
	for i, f := range p.Findings {
		id := rule.ID(f.Rule)
		if !id.Valid() {
			return nil, nil, false
		}
		findings[i] = diag.Finding{
			Rule:     id,
			Severity: diag.Severity(f.Severity),
			Span:     file.Span(f.Start, f.End),
			Message:  f.Message,
		}
	}
	dirs := make([]directive.Token, len(p.Directives))
	for i, d := range p.Directives {
		dirs[i] = directive.Token{
			Span: file.Span(d.Start, d.End),
			Kind: directive.Kind{
				Family: directive.Family(d.Family),
				Scope:  directive.Scope(d.Scope),
				Rule:   rule.ID(d.Rule),
			},
		}
	}
	return findings, dirs, true
}
