package variation

// Item is one entry of a folder, either a variation or a nested folder.
// Exactly one field is set.
type Item struct {
	Variation *Data
	Folder    *Folder
}

// Folder groups variations for display. Items keep the order in which they
// were reported.
type Folder struct {
	Data  FolderData
	Items []Item
}

// Catalog is an immutable snapshot of the variation tree of one synth
// unit plus the preset it belongs to. Catalogs are produced by Builder and
// replaced wholesale, never patched in place.
type Catalog struct {
	root   Folder
	preset PresetInfo
	vars   []*Data
	index  map[VariationID]int
	def    VariationID
}

// Root returns the unnamed top-level folder.
func (c *Catalog) Root() *Folder {
	return &c.root
}

// PresetInfo returns the preset the catalog belongs to.
func (c *Catalog) PresetInfo() PresetInfo {
	return c.preset
}

// Len returns the number of variations in the catalog.
func (c *Catalog) Len() int {
	return len(c.vars)
}

// Variations returns the variations in registration order. The returned
// slice is shared; callers must not modify it.
func (c *Catalog) Variations() []*Data {
	return c.vars
}

// Get looks up a variation by identifier.
func (c *Catalog) Get(id VariationID) (*Data, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.vars[i], true
}

// DefaultVariation returns the identifier of the default variation, or
// NoVariation if the catalog has none. When several variations carry
// FlagDefault only the first registered one is honored.
func (c *Catalog) DefaultVariation() VariationID {
	return c.def
}

// DisplayTitle composes the presented name of a variation, prepending the
// titles of enclosing folders flagged FolderFlagPrependTitle. The
// composition happens here, at display time; stored titles stay plain.
func (c *Catalog) DisplayTitle(id VariationID) string {
	if _, ok := c.index[id]; !ok {
		return ""
	}
	title, _ := displayTitle(&c.root, "", id)
	return title
}

func displayTitle(f *Folder, prefix string, id VariationID) (string, bool) {
	for i := range f.Items {
		switch {
		case f.Items[i].Variation != nil:
			if f.Items[i].Variation.ID == id {
				return prefix + f.Items[i].Variation.Title, true
			}
		case f.Items[i].Folder != nil:
			sub := f.Items[i].Folder
			subPrefix := prefix
			if sub.Data.Flags.Has(FolderFlagPrependTitle) && sub.Data.Title != "" {
				subPrefix = prefix + sub.Data.Title + " "
			}
			if title, ok := displayTitle(sub, subPrefix, id); ok {
				return title, true
			}
		}
	}
	return "", false
}

// Walk visits every variation in registration order together with the
// chain of folders enclosing it, outermost first.
func (c *Catalog) Walk(fn func(folders []*Folder, v *Data)) {
	walk(&c.root, nil, fn)
}

func walk(f *Folder, chain []*Folder, fn func(folders []*Folder, v *Data)) {
	for i := range f.Items {
		switch {
		case f.Items[i].Variation != nil:
			fn(chain, f.Items[i].Variation)
		case f.Items[i].Folder != nil:
			walk(f.Items[i].Folder, append(chain, f.Items[i].Folder), fn)
		}
	}
}

// SameIdentifiers reports whether both catalogs carry the same variation
// identifiers with the same activation sequences in the same order. When
// true, live matcher state built against one catalog remains valid for
// the other.
func (c *Catalog) SameIdentifiers(other *Catalog) bool {
	if other == nil || len(c.vars) != len(other.vars) {
		return false
	}
	for i := range c.vars {
		if c.vars[i].ID != other.vars[i].ID {
			return false
		}
		if !c.vars[i].Sequence.Equal(&other.vars[i].Sequence) {
			return false
		}
		if c.vars[i].Flags != other.vars[i].Flags {
			return false
		}
	}
	return true
}
