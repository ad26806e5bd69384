package variation

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Binary catalog persistence. Hosts store articulation maps alongside
// documents; Save and Load round-trip a snapshot exactly. The format is a
// replay of builder operations, so a corrupted stream fails the same
// protocol checks a misbehaving plug-in would.

const stateMagic = "SVAR"
const stateVersion uint32 = 1

const (
	tagEnd uint8 = iota
	tagVariation
	tagFolderBegin
	tagFolderEnd
)

// Save writes a catalog snapshot to w.
func Save(w io.Writer, c *Catalog) error {
	if _, err := w.Write([]byte(stateMagic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, stateVersion); err != nil {
		return err
	}
	if err := writeString(w, c.preset.Name); err != nil {
		return err
	}
	if err := writeString(w, c.preset.Path); err != nil {
		return err
	}
	if err := saveFolder(w, &c.root); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, tagEnd)
}

func saveFolder(w io.Writer, f *Folder) error {
	for i := range f.Items {
		switch {
		case f.Items[i].Variation != nil:
			if err := binary.Write(w, binary.LittleEndian, tagVariation); err != nil {
				return err
			}
			if err := saveVariation(w, f.Items[i].Variation); err != nil {
				return err
			}
		case f.Items[i].Folder != nil:
			sub := f.Items[i].Folder
			if err := binary.Write(w, binary.LittleEndian, tagFolderBegin); err != nil {
				return err
			}
			if err := writeString(w, sub.Data.Title); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(sub.Data.Color)); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, int32(sub.Data.Flags)); err != nil {
				return err
			}
			if err := saveFolder(w, sub); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, tagFolderEnd); err != nil {
				return err
			}
		}
	}
	return nil
}

func saveVariation(w io.Writer, v *Data) error {
	if err := binary.Write(w, binary.LittleEndian, int32(v.ID)); err != nil {
		return err
	}
	if err := writeString(w, v.Title); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(v.Sequence.Len())); err != nil {
		return err
	}
	for i := 0; i < v.Sequence.Len(); i++ {
		item := v.Sequence.At(i)
		if err := binary.Write(w, binary.LittleEndian, int32(item.Type)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int16(item.Pitch)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, item.Velocity); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int16(item.Number)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int16(item.Value)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(v.Color)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int16(v.TriggerPitch)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(v.Symbols.Len())); err != nil {
		return err
	}
	for i := 0; i < v.Symbols.Len(); i++ {
		if err := binary.Write(w, binary.LittleEndian, uint32(v.Symbols.At(i))); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, int32(v.Flags))
}

// Load reads a catalog snapshot written by Save. Newer format versions are
// rejected.
func Load(r io.Reader) (*Catalog, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if string(header) != stateMagic {
		return nil, fmt.Errorf("invalid catalog state format")
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version > stateVersion {
		return nil, fmt.Errorf("catalog state version %d is newer than supported version %d", version, stateVersion)
	}

	var preset PresetInfo
	var err error
	if preset.Name, err = readString(r); err != nil {
		return nil, err
	}
	if preset.Path, err = readString(r); err != nil {
		return nil, err
	}

	b := NewBuilder().SetPresetInfo(preset)
	for {
		var tag uint8
		if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
			return nil, err
		}
		switch tag {
		case tagEnd:
			return b.Build()
		case tagVariation:
			v, err := loadVariation(r)
			if err != nil {
				return nil, err
			}
			b.AddVariation(v)
		case tagFolderBegin:
			var fd FolderData
			if fd.Title, err = readString(r); err != nil {
				return nil, err
			}
			var color uint32
			if err := binary.Read(r, binary.LittleEndian, &color); err != nil {
				return nil, err
			}
			var flags int32
			if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
				return nil, err
			}
			fd.Color = Color(color)
			fd.Flags = FolderFlags(flags)
			b.BeginFolder(fd)
		case tagFolderEnd:
			b.EndFolder()
		default:
			return nil, fmt.Errorf("invalid catalog state tag %d", tag)
		}
	}
}

func loadVariation(r io.Reader) (Data, error) {
	var v Data

	var id int32
	if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
		return v, err
	}
	v.ID = VariationID(id)

	var err error
	if v.Title, err = readString(r); err != nil {
		return v, err
	}

	var seqCount uint8
	if err := binary.Read(r, binary.LittleEndian, &seqCount); err != nil {
		return v, err
	}
	if int(seqCount) > MaxSequenceItems {
		return v, fmt.Errorf("activation sequence of %d items exceeds maximum of %d", seqCount, MaxSequenceItems)
	}
	for i := 0; i < int(seqCount); i++ {
		var (
			itemType int32
			pitch    int16
			velocity float32
			number   int16
			value    int16
		)
		if err := binary.Read(r, binary.LittleEndian, &itemType); err != nil {
			return v, err
		}
		if err := binary.Read(r, binary.LittleEndian, &pitch); err != nil {
			return v, err
		}
		if err := binary.Read(r, binary.LittleEndian, &velocity); err != nil {
			return v, err
		}
		if err := binary.Read(r, binary.LittleEndian, &number); err != nil {
			return v, err
		}
		if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
			return v, err
		}
		v.Sequence.add(SequenceItem{
			Type:     ItemType(itemType),
			Pitch:    Pitch(pitch),
			Velocity: velocity,
			Number:   CCNumber(number),
			Value:    CCValue(value),
		})
	}

	var color uint32
	if err := binary.Read(r, binary.LittleEndian, &color); err != nil {
		return v, err
	}
	v.Color = Color(color)

	var trigger int16
	if err := binary.Read(r, binary.LittleEndian, &trigger); err != nil {
		return v, err
	}
	v.TriggerPitch = Pitch(trigger)

	var symCount uint8
	if err := binary.Read(r, binary.LittleEndian, &symCount); err != nil {
		return v, err
	}
	if int(symCount) > MaxScoreSymbols {
		return v, fmt.Errorf("symbol list of %d items exceeds maximum of %d", symCount, MaxScoreSymbols)
	}
	for i := 0; i < int(symCount); i++ {
		var sym uint32
		if err := binary.Read(r, binary.LittleEndian, &sym); err != nil {
			return v, err
		}
		v.Symbols.AddSymbol(ScoreSymbolID(sym))
	}

	var flags int32
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return v, err
	}
	v.Flags = Flags(flags)

	return v, nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("string of %d bytes exceeds state format limit", len(s))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
