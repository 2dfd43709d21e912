package namespace

import (
	"strings"

	"github.com/hambosto/vaultfs/internal/constants"
)

// rootPath is the path of the one root directory entry every
// namespace must have (spec.md §3).
const rootPath = "/"

// PersistFunc is invoked with the freshly serialized entry list after
// every mutating operation. The session wires this to encrypt and
// write the blob into the active volume's region (spec.md §4.5).
type PersistFunc func(blob []byte) error

// Namespace is the in-memory hierarchical filesystem tree, identical
// in shape for every mounted volume. It owns no cryptography and no
// file I/O: persistence is entirely delegated to PersistFunc.
type Namespace struct {
	entries []Entry
	cwd     string
	persist PersistFunc
}

// New creates a namespace containing only the root directory and
// wires persist to be called after every mutation.
func New(persist PersistFunc) *Namespace {
	return &Namespace{
		entries: []Entry{{Name: "root", Kind: Directory, Path: rootPath, Used: true}},
		cwd:     rootPath,
		persist: persist,
	}
}

// Load replaces the in-memory entry list with entries read back from
// storage (the mount-time loading path, spec.md §4.5). It does not
// invoke persist.
func Load(entries []Entry, persist PersistFunc) *Namespace {
	return &Namespace{entries: append([]Entry(nil), entries...), cwd: rootPath, persist: persist}
}

// Entries returns the full entry list, tombstones included, in
// insertion order — the exact slice spec.md §8's round-trip property
// compares across a mount/remount cycle.
func (ns *Namespace) Entries() []Entry {
	return append([]Entry(nil), ns.entries...)
}

// Marshal serializes the current entry list using the codec of
// SPEC_FULL.md §4.5.
func (ns *Namespace) Marshal() []byte {
	return encode(ns.entries)
}

// Unmarshal parses blob produced by Marshal (or by a prior session)
// into an entry list, without mutating ns.
func Unmarshal(blob []byte) ([]Entry, error) {
	return decode(blob)
}

// CurrentPath returns the absolute path of the current directory.
func (ns *Namespace) CurrentPath() string {
	return ns.cwd
}

// join implements spec.md §4.5's join(base, name).
func join(base, name string) string {
	if base == rootPath {
		return rootPath + name
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// parent implements spec.md §4.5's parent(path): "/" maps to "" (the
// above-root sentinel); otherwise the substring before the last "/",
// or "/" when that slash is the first character.
func parent(path string) string {
	if path == rootPath {
		return ""
	}
	idx := strings.LastIndex(path, "/")
	if idx == 0 {
		return rootPath
	}
	return path[:idx]
}

func (ns *Namespace) findUsed(path string, kind Kind, wantKind bool) *Entry {
	for i := range ns.entries {
		e := &ns.entries[i]
		if !e.Used || e.Path != path {
			continue
		}
		if wantKind && e.Kind != kind {
			continue
		}
		return e
	}
	return nil
}

func (ns *Namespace) save() error {
	if ns.persist == nil {
		return nil
	}
	return ns.persist(ns.Marshal())
}

// List enumerates used entries whose parent path equals the current
// directory, in insertion order.
func (ns *Namespace) List() []Entry {
	var out []Entry
	for _, e := range ns.entries {
		if e.Used && parent(e.Path) == ns.cwd {
			out = append(out, e)
		}
	}
	return out
}

// TreeNode pairs an entry with its depth for Tree's depth-first walk.
type TreeNode struct {
	Entry Entry
	Depth int
}

// Tree performs a depth-first enumeration from root. The root entry
// itself is not listed; its direct children are at depth 0.
func (ns *Namespace) Tree() []TreeNode {
	var out []TreeNode
	var walk func(base string, depth int)
	walk = func(base string, depth int) {
		for _, e := range ns.entries {
			if !e.Used || parent(e.Path) != base {
				continue
			}
			out = append(out, TreeNode{Entry: e, Depth: depth})
			if e.Kind == Directory {
				walk(e.Path, depth+1)
			}
		}
	}
	walk(rootPath, 0)
	return out
}

// Chdir updates the current directory. "/" resets to root; any other
// argument is resolved as a child of the current directory, per
// spec.md §4.5 and §9 Open Question 3 (absolute paths other than "/"
// are intentionally unsupported).
func (ns *Namespace) Chdir(path string) error {
	if path == rootPath {
		ns.cwd = rootPath
		return nil
	}

	target := join(ns.cwd, path)
	if ns.findUsed(target, Directory, true) == nil {
		return constants.ErrNotFound
	}
	ns.cwd = target
	return nil
}

func validateName(name string) error {
	if name == "" {
		return constants.ErrEmptyName
	}
	if strings.Contains(name, "/") {
		return constants.ErrNameHasSlash
	}
	return nil
}

// Mkdir creates a directory under the current directory.
func (ns *Namespace) Mkdir(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	target := join(ns.cwd, name)
	if ns.findUsed(target, Directory, false) != nil {
		return constants.ErrExists
	}

	ns.entries = append(ns.entries, Entry{Name: name, Kind: Directory, Path: target, Used: true})
	return ns.save()
}

// Rmdir tombstones a directory under the current directory.
func (ns *Namespace) Rmdir(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	target := join(ns.cwd, name)
	e := ns.findUsed(target, Directory, true)
	if e == nil {
		return constants.ErrNotFound
	}
	e.Used = false
	return ns.save()
}

// Create creates an empty file under the current directory.
func (ns *Namespace) Create(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	target := join(ns.cwd, name)
	if ns.findUsed(target, File, false) != nil {
		return constants.ErrExists
	}

	ns.entries = append(ns.entries, Entry{Name: name, Kind: File, Path: target, Used: true, Content: []byte{}})
	return ns.save()
}

// Write replaces a file's content.
func (ns *Namespace) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	target := join(ns.cwd, name)
	e := ns.findUsed(target, File, true)
	if e == nil {
		return constants.ErrNotFound
	}
	e.Content = append([]byte(nil), data...)
	return ns.save()
}

// Append concatenates data onto a file's content.
func (ns *Namespace) Append(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	target := join(ns.cwd, name)
	e := ns.findUsed(target, File, true)
	if e == nil {
		return constants.ErrNotFound
	}
	e.Content = append(e.Content, data...)
	return ns.save()
}

// Read returns a file's content. It does not mutate the namespace, so
// it does not trigger persistence.
func (ns *Namespace) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	target := join(ns.cwd, name)
	e := ns.findUsed(target, File, true)
	if e == nil {
		return nil, constants.ErrNotFound
	}
	return append([]byte(nil), e.Content...), nil
}

// Rm tombstones a file under the current directory.
func (ns *Namespace) Rm(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	target := join(ns.cwd, name)
	e := ns.findUsed(target, File, true)
	if e == nil {
		return constants.ErrNotFound
	}
	e.Used = false
	return ns.save()
}
