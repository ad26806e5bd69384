package variation

import (
	"errors"
	"fmt"
)

// Builder accumulates variations and folders into a catalog. Calls have no
// effect visible to readers; nothing escapes until Build succeeds and the
// result is published through a Store.
//
// The builder is fluent and error-accumulating: protocol violations are
// collected and reported once at Build, which then emits no catalog.
type Builder struct {
	root   Folder
	stack  []*Folder
	preset PresetInfo
	vars   []*Data
	seen   map[VariationID]int
	def    VariationID
	errs   []error
	built  bool
}

// NewBuilder creates an empty catalog builder.
func NewBuilder() *Builder {
	return &Builder{
		seen: make(map[VariationID]int),
		def:  NoVariation,
	}
}

func (b *Builder) current() *Folder {
	if len(b.stack) == 0 {
		return &b.root
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) failIfBuilt() bool {
	if b.built {
		b.errs = append(b.errs, ErrBuilderFinalized)
	}
	return b.built
}

// AddVariation appends a variation at the current nesting level.
func (b *Builder) AddVariation(d Data) *Builder {
	if b.failIfBuilt() {
		return b
	}
	if _, dup := b.seen[d.ID]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %d (%q)", ErrDuplicateID, d.ID, d.Title))
		return b
	}
	v := new(Data)
	*v = d
	b.seen[d.ID] = len(b.vars)
	b.vars = append(b.vars, v)
	if v.Flags.Has(FlagDefault) && b.def == NoVariation {
		b.def = v.ID
	}
	cur := b.current()
	cur.Items = append(cur.Items, Item{Variation: v})
	return b
}

// BeginFolder opens a folder; following variations are added to it until
// the matching EndFolder.
func (b *Builder) BeginFolder(d FolderData) *Builder {
	if b.failIfBuilt() {
		return b
	}
	f := &Folder{Data: d}
	cur := b.current()
	cur.Items = append(cur.Items, Item{Folder: f})
	b.stack = append(b.stack, f)
	return b
}

// EndFolder closes the innermost open folder. Nesting depth never goes
// negative: a surplus EndFolder is a protocol error.
func (b *Builder) EndFolder() *Builder {
	if b.failIfBuilt() {
		return b
	}
	if len(b.stack) == 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: EndFolder without open folder", ErrUnbalancedFolder))
		return b
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// SetPresetInfo records the preset the reported variations belong to.
func (b *Builder) SetPresetInfo(info PresetInfo) *Builder {
	if b.failIfBuilt() {
		return b
	}
	b.preset = info
	return b
}

// Build finalizes the catalog. Every BeginFolder must have been closed and
// every accumulated error aborts emission; a failed Build never yields a
// partial catalog. The builder cannot be reused afterwards.
func (b *Builder) Build() (*Catalog, error) {
	if b.built {
		return nil, ErrBuilderFinalized
	}
	b.built = true

	if len(b.stack) > 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: %d folder(s) left open", ErrUnbalancedFolder, len(b.stack)))
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("catalog build failed: %w", errors.Join(b.errs...))
	}

	return &Catalog{
		root:   b.root,
		preset: b.preset,
		vars:   b.vars,
		index:  b.seen,
		def:    b.def,
	}, nil
}

// MustBuild returns the built catalog or panics on error.
func (b *Builder) MustBuild() *Catalog {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
