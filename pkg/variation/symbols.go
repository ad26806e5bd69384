package variation

// ScoreSymbolID is a four-character code for a notation symbol. An
// instrument can suggest a symbol combination that should trigger a
// variation when entered in a score.
type ScoreSymbolID uint32

const (
	SymbolStaccato      ScoreSymbolID = 's'<<24 | 't'<<16 | 'a'<<8 | 'c'
	SymbolStaccatissimo ScoreSymbolID = 's'<<24 | 't'<<16 | 'i'<<8 | 's'
	SymbolTenuto        ScoreSymbolID = 't'<<24 | 'e'<<16 | 'n'<<8 | 'u'
	SymbolAccent        ScoreSymbolID = 'a'<<24 | 'c'<<16 | 'c'<<8 | 'e'
	SymbolStrongAccent  ScoreSymbolID = 'm'<<24 | 'a'<<16 | 'r'<<8 | 'c'
	SymbolForceFP       ScoreSymbolID = 'f'<<24 | 'p'<<16 | 'n'<<8 | 'o'
	SymbolForceFFP      ScoreSymbolID = 'f'<<24 | 'f'<<16 | 'p'<<8 | 'n'
	SymbolForceFZ       ScoreSymbolID = 'f'<<24 | 'z'<<16 | 'd'<<8 | 'o'
	SymbolForceFFZ      ScoreSymbolID = 'f'<<24 | 'f'<<16 | 'z'<<8 | 'o'
	SymbolForceSF       ScoreSymbolID = 's'<<24 | 'f'<<16 | 'd'<<8 | 'o'
	SymbolForceSFF      ScoreSymbolID = 's'<<24 | 'f'<<16 | 'f'<<8 | 'o'
	SymbolForceSFZ      ScoreSymbolID = 's'<<24 | 'f'<<16 | 'z'<<8 | 'o'
	SymbolForceSFFZ     ScoreSymbolID = 's'<<24 | 'f'<<16 | 'f'<<8 | 'z'
	SymbolForceSFP      ScoreSymbolID = 's'<<24 | 'f'<<16 | 'p'<<8 | 'o'
	SymbolForceSFFP     ScoreSymbolID = 's'<<24 | 'f'<<16 | 'f'<<8 | 'p'

	SymbolMezzoStaccato             ScoreSymbolID = 'm'<<24 | 'z'<<16 | 's'<<8 | 'c'
	SymbolAccentTenuto              ScoreSymbolID = 'a'<<24 | 'c'<<16 | 't'<<8 | 'n'
	SymbolAccentStaccato            ScoreSymbolID = 'a'<<24 | 'c'<<16 | 's'<<8 | 't'
	SymbolAccentStaccatissimo       ScoreSymbolID = 'a'<<24 | 'c'<<16 | 's'<<8 | 'o'
	SymbolStrongAccentTenuto        ScoreSymbolID = 'm'<<24 | 'r'<<16 | 't'<<8 | 'n'
	SymbolStrongAccentStaccato      ScoreSymbolID = 'm'<<24 | 'r'<<16 | 's'<<8 | 't'
	SymbolStrongAccentStaccatissimo ScoreSymbolID = 'm'<<24 | 'r'<<16 | 's'<<8 | 'o'

	SymbolTremolo1         ScoreSymbolID = 't'<<24 | 'r'<<16 | 'm'<<8 | '1'
	SymbolTremolo2         ScoreSymbolID = 't'<<24 | 'r'<<16 | 'm'<<8 | '2'
	SymbolTremolo3         ScoreSymbolID = 't'<<24 | 'r'<<16 | 'm'<<8 | '3'
	SymbolIntervalTremolo1 ScoreSymbolID = 'i'<<24 | 't'<<16 | 'r'<<8 | '1'
	SymbolIntervalTremolo2 ScoreSymbolID = 'i'<<24 | 't'<<16 | 'r'<<8 | '2'
	SymbolIntervalTremolo3 ScoreSymbolID = 'i'<<24 | 't'<<16 | 'r'<<8 | '3'

	SymbolArpeggioNormal ScoreSymbolID = 'a'<<24 | 'r'<<16 | 'p'<<8 | 'N'
	SymbolArpeggioUp     ScoreSymbolID = 'a'<<24 | 'r'<<16 | 'p'<<8 | 'U'
	SymbolArpeggioDown   ScoreSymbolID = 'a'<<24 | 'r'<<16 | 'p'<<8 | 'D'

	SymbolGlissando      ScoreSymbolID = 'g'<<24 | 'l'<<16 | 's'<<8 | 's'
	SymbolPortamento     ScoreSymbolID = 'p'<<24 | 'o'<<16 | 'r'<<8 | 't'
	SymbolSlur           ScoreSymbolID = 's'<<24 | 'l'<<16 | 'u'<<8 | 'r'
	SymbolTrillHalftone  ScoreSymbolID = 't'<<24 | 'r'<<16 | 'H'<<8 | 'T'
	SymbolTrillWholetone ScoreSymbolID = 't'<<24 | 'r'<<16 | 'W'<<8 | 'T'
	SymbolVibrato        ScoreSymbolID = 'v'<<24 | 'i'<<16 | 'b'<<8 | 'r'
	SymbolWideVibrato    ScoreSymbolID = 'w'<<24 | 'v'<<16 | 'i'<<8 | 'b'
	SymbolCircle         ScoreSymbolID = 'c'<<24 | 'i'<<16 | 'r'<<8 | 'c'
	SymbolPlus           ScoreSymbolID = 'p'<<24 | 'l'<<16 | 'u'<<8 | 's'
	SymbolLaissezVibrer  ScoreSymbolID = 'l'<<24 | 'v'<<16 | 'i'<<8 | 'b'

	SymbolConSordino      ScoreSymbolID = 's'<<24 | 'o'<<16 | 'r'<<8 | 'd'
	SymbolSenzaSordino    ScoreSymbolID = 's'<<24 | 's'<<16 | 'o'<<8 | 'r'
	SymbolArco            ScoreSymbolID = 'a'<<24 | 'r'<<16 | 'c'<<8 | 'o'
	SymbolPizzicato       ScoreSymbolID = 'p'<<24 | 'i'<<16 | 'z'<<8 | 'z'
	SymbolColLegno        ScoreSymbolID = 'l'<<24 | 'e'<<16 | 'g'<<8 | 'n'
	SymbolSulPonticello   ScoreSymbolID = 'p'<<24 | 'o'<<16 | 'n'<<8 | 't'
	SymbolSulTasto        ScoreSymbolID = 't'<<24 | 'a'<<16 | 's'<<8 | 't'
	SymbolBehindBridge    ScoreSymbolID = 'b'<<24 | 'h'<<16 | 'n'<<8 | 'd'
	SymbolDownBow         ScoreSymbolID = 'd'<<24 | 'n'<<16 | 'b'<<8 | 'w'
	SymbolUpBow           ScoreSymbolID = 'u'<<24 | 'p'<<16 | 'b'<<8 | 'w'
	SymbolBartokPizzicato ScoreSymbolID = 's'<<24 | 'n'<<16 | 'a'<<8 | 'p'
	SymbolPedalDown       ScoreSymbolID = 'p'<<24 | 'd'<<16 | 'd'<<8 | 'n'
	SymbolPedalUp         ScoreSymbolID = 'p'<<24 | 'd'<<16 | 'u'<<8 | 'p'
	SymbolHammerOn        ScoreSymbolID = 'h'<<24 | 'm'<<16 | 'o'<<8 | 'n'
	SymbolPullOff         ScoreSymbolID = 'p'<<24 | 'l'<<16 | 'o'<<8 | 'f'
	SymbolGuitarTap       ScoreSymbolID = 'g'<<24 | 't'<<16 | 'a'<<8 | 'p'
)

// String renders the four-character code.
func (s ScoreSymbolID) String() string {
	return string([]byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)})
}

// SymbolFromCode resolves a four-character code like "pizz". ok is false
// for anything that is not exactly four bytes.
func SymbolFromCode(code string) (ScoreSymbolID, bool) {
	if len(code) != 4 {
		return 0, false
	}
	return ScoreSymbolID(code[0])<<24 | ScoreSymbolID(code[1])<<16 |
		ScoreSymbolID(code[2])<<8 | ScoreSymbolID(code[3]), true
}

// MaxScoreSymbols bounds the symbol combination attached to a variation.
const MaxScoreSymbols = 4

// SymbolList is the notation symbol combination suggested for a variation.
// Appends past MaxScoreSymbols are silently dropped.
type SymbolList struct {
	symbols [MaxScoreSymbols]ScoreSymbolID
	count   int
}

func (l *SymbolList) Len() int {
	return l.count
}

func (l *SymbolList) At(i int) ScoreSymbolID {
	return l.symbols[i]
}

func (l *SymbolList) Clear() {
	l.count = 0
}

func (l *SymbolList) AddSymbol(symbol ScoreSymbolID) *SymbolList {
	if l.count < MaxScoreSymbols {
		l.symbols[l.count] = symbol
		l.count++
	}
	return l
}

// Symbols returns a copy of the populated symbols.
func (l *SymbolList) Symbols() []ScoreSymbolID {
	out := make([]ScoreSymbolID, l.count)
	copy(out, l.symbols[:l.count])
	return out
}
