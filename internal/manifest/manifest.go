// Package manifest records the files of one export run: which variant wrote
// them, their sizes and SHA-256 checksums. Readers use it to detect partial
// or tampered exports and incompatible schema versions.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileName is the manifest's name inside an export directory.
const FileName = "manifest.json"

// SchemaVersion is bumped on export format changes. A major bump marks an
// incompatible change; readers reject manifests of another major version.
const SchemaVersion = "1.0"

// Variant names the export that produced a file.
type Variant string

const (
	VariantRaw       Variant = "raw"
	VariantSpeakers  Variant = "speakers"
	VariantAggregate Variant = "aggregate"
)

// File is one exported file, relative to the export directory.
type File struct {
	Path    string  `json:"path"`
	Bytes   int64   `json:"bytes"`
	SHA256  string  `json:"sha256"`
	Variant Variant `json:"variant"`
}

// Manifest is the content of manifest.json.
type Manifest struct {
	SchemaVersion string    `json:"schema_version"`
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	ToolVersion   string    `json:"tool_version"`
	Files         []File    `json:"files"`
}

// New starts a manifest for a run with a fresh run id.
func New(toolVersion string, now time.Time) *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersion,
		RunID:         uuid.NewString(),
		GeneratedAt:   now.UTC(),
		ToolVersion:   toolVersion,
		Files:         []File{},
	}
}

func checksum(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

// Add records dir/rel. A file recorded earlier under the same path is
// replaced.
func (m *Manifest) Add(dir, rel string, variant Variant) error {
	rel = filepath.ToSlash(rel)
	n, sum, err := checksum(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("checksum %s: %w", rel, err)
	}
	f := File{Path: rel, Bytes: n, SHA256: sum, Variant: variant}
	if i := slices.IndexFunc(m.Files, func(x File) bool { return x.Path == rel }); i >= 0 {
		m.Files[i] = f
		return nil
	}
	m.Files = append(m.Files, f)
	return nil
}

// Merge keeps the entries of prev for variants this manifest did not write.
// Exporting one variant must not drop the files of the others.
func (m *Manifest) Merge(prev *Manifest) {
	if prev == nil {
		return
	}
	written := map[Variant]bool{}
	for _, f := range m.Files {
		written[f.Variant] = true
	}
	for _, f := range prev.Files {
		if !written[f.Variant] && !slices.ContainsFunc(m.Files, func(x File) bool { return x.Path == f.Path }) {
			m.Files = append(m.Files, f)
		}
	}
}

func (m *Manifest) sortFiles() {
	slices.SortFunc(m.Files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
}

// ContentHash is a digest over the sorted file list. Two runs exporting
// identical content share the hash even though run ids differ.
func (m *Manifest) ContentHash() string {
	files := slices.Clone(m.Files)
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
	h := sha256.New()
	for _, f := range files {
		fmt.Fprintf(h, "%s\x00%d\x00%s\n", f.Path, f.Bytes, f.SHA256)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ToJSON serializes the manifest with files sorted by path.
func (m *Manifest) ToJSON() ([]byte, error) {
	m.sortFiles()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// ErrIncompatible is returned for manifests of another major schema version.
var ErrIncompatible = errors.New("incompatible manifest schema version")

func major(v string) string {
	m, _, _ := strings.Cut(v, ".")
	return m
}

// FromJSON deserializes a manifest and checks its schema version.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if major(m.SchemaVersion) != major(SchemaVersion) {
		return nil, fmt.Errorf("%w: %q (supported %s)", ErrIncompatible, m.SchemaVersion, SchemaVersion)
	}
	return &m, nil
}

// Write stores the manifest in dir through a temporary file.
func (m *Manifest) Write(dir string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Read loads dir/manifest.json. A missing manifest returns an error
// matching os.ErrNotExist.
func Read(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// Problem is a file whose content does not match the manifest.
type Problem struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Verify recomputes the checksum of every listed file in dir.
func (m *Manifest) Verify(dir string) []Problem {
	var out []Problem
	for _, f := range m.Files {
		n, sum, err := checksum(filepath.Join(dir, filepath.FromSlash(f.Path)))
		switch {
		case errors.Is(err, os.ErrNotExist):
			out = append(out, Problem{Path: f.Path, Reason: "missing"})
		case err != nil:
			out = append(out, Problem{Path: f.Path, Reason: err.Error()})
		case n != f.Bytes:
			out = append(out, Problem{Path: f.Path, Reason: fmt.Sprintf("size %d, want %d", n, f.Bytes)})
		case sum != f.SHA256:
			out = append(out, Problem{Path: f.Path, Reason: "checksum mismatch"})
		}
	}
	return out
}

// Verify reads the manifest of dir and checks every file it lists.
func Verify(dir string) ([]Problem, error) {
	m, err := Read(dir)
	if err != nil {
		return nil, err
	}
	return m.Verify(dir), nil
}
