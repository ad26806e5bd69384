// Package variation implements the sound-variation catalog a virtual
// instrument reports to its host: variations (articulations) organized in
// folders, each with an activation sequence, plus the preset the catalog
// belongs to. Catalogs are built with Builder, published through Store and
// consumed read-only after that.
package variation

// VariationID addresses a variation inside a catalog. IDs are assigned by
// the instrument and must be identical across successive queries of the
// same loaded preset and across editor sessions; the host stores them in
// documents.
type VariationID int32

// NoVariation marks the absence of an active or addressed variation.
const NoVariation VariationID = -1

type (
	Pitch    int16
	CCNumber int16
	CCValue  int16

	// Color is a 32-bit ARGB color, 0 when not provided.
	Color uint32
)

// NoTriggerPitch marks a variation without a suggested key switch.
const NoTriggerPitch Pitch = -1

// Flags qualify how a variation behaves.
type Flags int32

const (
	// FlagMomentary marks a variation that re-enables the previously
	// active variation when it terminates.
	FlagMomentary Flags = 1 << iota

	// FlagDefault marks the variation active on preset load. At most one
	// variation per catalog is honored; later flags are ignored.
	FlagDefault
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Data describes a single reported variation.
type Data struct {
	ID           VariationID
	Title        string
	Sequence     Sequence
	Color        Color      // optional, 0 if not provided
	TriggerPitch Pitch      // optional, NoTriggerPitch if not provided
	Symbols      SymbolList // optional
	Flags        Flags
}

// NewData returns a Data with the optional fields at their unset values.
func NewData(id VariationID, title string) Data {
	return Data{
		ID:           id,
		Title:        title,
		TriggerPitch: NoTriggerPitch,
	}
}

// FolderFlags qualify how a folder presents its children.
type FolderFlags int32

// FolderFlagPrependTitle prepends the folder title to the displayed names
// of the variations it contains.
const FolderFlagPrependTitle FolderFlags = 1 << 0

func (f FolderFlags) Has(flag FolderFlags) bool {
	return f&flag != 0
}

// FolderData describes a folder grouping variations for display.
type FolderData struct {
	Title string
	Color Color // optional, 0 if not provided
	Flags FolderFlags
}

// PresetInfo names the sound preset the reported variations belong to.
// Path is a filesystem-safe qualifier resolving name clashes, not meant
// for display.
type PresetInfo struct {
	Name string
	Path string
}
