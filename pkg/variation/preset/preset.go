// Package preset compiles YAML articulation-map definitions into
// catalogs. Instrument developers describe their variations in a preset
// file; the compiled catalog passes through the regular builder, so every
// protocol check (folder balance, duplicate identifiers) applies to file
// content as well.
//
// A minimal definition:
//
//	name: Solo Violin
//	path: solo-violin
//	variations:
//	  - id: 1
//	    title: Sustain
//	    default: true
//	    sequence:
//	      - note_on: 24
//	  - folder: Shorts
//	    prepend_title: true
//	    children:
//	      - id: 2
//	        title: Staccato
//	        symbols: [stac]
//	        sequence:
//	          - note_on: 25
package preset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/soundvariation/pkg/variation"
)

// File is the top-level YAML document.
type File struct {
	Name       string  `yaml:"name"`
	Path       string  `yaml:"path"`
	Variations []Entry `yaml:"variations"`
}

// Entry is either a variation or, when Folder is set, a folder holding
// Children.
type Entry struct {
	// Variation fields.
	ID           *int32   `yaml:"id"`
	Title        string   `yaml:"title"`
	Color        string   `yaml:"color"`
	TriggerPitch *int16   `yaml:"trigger_pitch"`
	Momentary    bool     `yaml:"momentary"`
	Default      bool     `yaml:"default"`
	Symbols      []string `yaml:"symbols"`
	Sequence     []Step   `yaml:"sequence"`

	// Folder fields.
	Folder       string  `yaml:"folder"`
	PrependTitle bool    `yaml:"prepend_title"`
	Children     []Entry `yaml:"children"`
}

// Step is one activation sequence item. Exactly one of Note, NoteOn,
// NoteOff, Controller or Program must be set; Velocity and Value qualify
// Note and Controller respectively.
type Step struct {
	Note       *int16   `yaml:"note"`
	NoteOn     *int16   `yaml:"note_on"`
	NoteOff    *int16   `yaml:"note_off"`
	Velocity   *float32 `yaml:"velocity"`
	Controller *int16   `yaml:"controller"`
	Value      *int16   `yaml:"value"`
	Program    *int16   `yaml:"program"`
}

// Load reads and compiles a preset file.
func Load(path string) (*variation.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}
	return Parse(data)
}

// Parse compiles a YAML document into a catalog.
func Parse(data []byte) (*variation.Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}

	b := variation.NewBuilder().SetPresetInfo(variation.PresetInfo{
		Name: f.Name,
		Path: f.Path,
	})
	if err := addEntries(b, f.Variations); err != nil {
		return nil, err
	}
	return b.Build()
}

func addEntries(b *variation.Builder, entries []Entry) error {
	for i := range entries {
		e := &entries[i]
		if e.Folder != "" {
			fd := variation.FolderData{Title: e.Folder}
			if e.PrependTitle {
				fd.Flags |= variation.FolderFlagPrependTitle
			}
			if e.Color != "" {
				color, err := ParseColor(e.Color)
				if err != nil {
					return fmt.Errorf("folder %q: %w", e.Folder, err)
				}
				fd.Color = color
			}
			b.BeginFolder(fd)
			if err := addEntries(b, e.Children); err != nil {
				return err
			}
			b.EndFolder()
			continue
		}

		d, err := e.variation()
		if err != nil {
			return err
		}
		b.AddVariation(d)
	}
	return nil
}

func (e *Entry) variation() (variation.Data, error) {
	if e.ID == nil {
		return variation.Data{}, fmt.Errorf("variation %q: missing id", e.Title)
	}
	d := variation.NewData(variation.VariationID(*e.ID), e.Title)

	if e.Color != "" {
		color, err := ParseColor(e.Color)
		if err != nil {
			return d, fmt.Errorf("variation %q: %w", e.Title, err)
		}
		d.Color = color
	}
	if e.TriggerPitch != nil {
		d.TriggerPitch = variation.Pitch(*e.TriggerPitch)
	}
	if e.Momentary {
		d.Flags |= variation.FlagMomentary
	}
	if e.Default {
		d.Flags |= variation.FlagDefault
	}

	for _, code := range e.Symbols {
		sym, ok := variation.SymbolFromCode(code)
		if !ok {
			return d, fmt.Errorf("variation %q: invalid score symbol %q", e.Title, code)
		}
		d.Symbols.AddSymbol(sym)
	}

	if len(e.Sequence) > variation.MaxSequenceItems {
		return d, fmt.Errorf("variation %q: sequence of %d steps exceeds maximum of %d",
			e.Title, len(e.Sequence), variation.MaxSequenceItems)
	}
	for i := range e.Sequence {
		if err := e.Sequence[i].apply(&d.Sequence); err != nil {
			return d, fmt.Errorf("variation %q, step %d: %w", e.Title, i, err)
		}
	}
	return d, nil
}

func (s *Step) apply(seq *variation.Sequence) error {
	switch {
	case s.Note != nil:
		velocity := float32(1)
		if s.Velocity != nil {
			velocity = *s.Velocity
		}
		seq.AddNote(variation.Pitch(*s.Note), velocity)
	case s.NoteOn != nil:
		seq.AddNoteOn(variation.Pitch(*s.NoteOn))
	case s.NoteOff != nil:
		seq.AddNoteOff(variation.Pitch(*s.NoteOff))
	case s.Controller != nil:
		if s.Value == nil {
			return fmt.Errorf("controller step needs a value")
		}
		seq.AddController(variation.CCNumber(*s.Controller), variation.CCValue(*s.Value))
	case s.Program != nil:
		seq.AddProgramChange(variation.CCValue(*s.Program))
	default:
		return fmt.Errorf("empty sequence step")
	}
	return nil
}

// ParseColor reads "#RRGGBB" or "#AARRGGBB". Plain RGB colors get an
// opaque alpha channel.
func ParseColor(s string) (variation.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return variation.Color(v), nil
}
