// Package namespace implements the in-memory hierarchical filesystem
// tree of spec.md §4.5: a flat, ordered, tombstoned list of FileEntry
// values with path-based operations, persisted whole into an
// encrypted volume region.
package namespace

// Kind distinguishes a FileEntry as a file or a directory.
type Kind uint8

const (
	File Kind = iota
	Directory
)

// Entry is one node of the namespace. Tombstoned entries (Used ==
// false) are retained, never compacted, so deletion never shifts the
// positions of surviving entries (spec.md §4.4's determinism
// requirement for tests).
type Entry struct {
	Name    string
	Kind    Kind
	Path    string
	Used    bool
	Content []byte
}
