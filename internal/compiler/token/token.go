package token

// Direction is the third character of a located variable name (%I, %Q, %M).
type Direction byte

const (
	DirInput  Direction = 'I' // %I
	DirOutput Direction = 'Q' // %Q
	DirMemory Direction = 'M' // %M
)

// Directions lists the directions in the order their bool groups are emitted.
var Directions = []Direction{DirInput, DirOutput, DirMemory}

// Size is the fourth character of a located variable name (%IX, %QW, ...).
type Size byte

const (
	SizeBit        Size = 'X' // 1 bit
	SizeByte       Size = 'B' // 1 byte
	SizeWord       Size = 'W' // 2 bytes
	SizeDoubleWord Size = 'D' // 4 bytes, including REAL
	SizeLongWord   Size = 'L' // 8 bytes, including LREAL

	// SizeGroup never appears in compiler output. The merger renames the
	// first bit variable of a group to "__<dir>G<index>" so that later stages
	// see the whole group as one entry.
	SizeGroup Size = 'G'
)

// PrefixLen is the length of the "__" + direction + size prefix that
// precedes the index digits of a located variable name.
const PrefixLen = 4

func (d Direction) Valid() bool {
	return d == DirInput || d == DirOutput || d == DirMemory
}

// Enum returns the IecLocationDirection suffix for the direction. Anything
// that is not an input or output is treated as memory.
func (d Direction) Enum() string {
	switch d {
	case DirInput:
		return "IN"
	case DirOutput:
		return "OUT"
	default:
		return "MEM"
	}
}

func (s Size) Valid() bool {
	switch s {
	case SizeBit, SizeByte, SizeWord, SizeDoubleWord, SizeLongWord:
		return true
	}
	return false
}

// Enum returns the IecLocationSize suffix for the size. Groups are bits and
// unknown sizes fall back to LONGWORD.
func (s Size) Enum() string {
	switch s {
	case SizeGroup, SizeBit:
		return "BIT"
	case SizeByte:
		return "BYTE"
	case SizeWord:
		return "WORD"
	case SizeDoubleWord:
		return "DOUBLEWORD"
	default:
		return "LONGWORD"
	}
}

// Classify reads the direction and size characters of a located variable
// name. ok is false when the name is too short to carry them.
func Classify(name string) (dir Direction, size Size, ok bool) {
	if len(name) < PrefixLen {
		return 0, 0, false
	}
	return Direction(name[2]), Size(name[3]), true
}

// ValueType is the IEC elementary type tag copied from the declaration.
type ValueType string

const (
	TypeBool  ValueType = "BOOL"
	TypeByte  ValueType = "BYTE"
	TypeSint  ValueType = "SINT"
	TypeUsint ValueType = "USINT"
	TypeInt   ValueType = "INT"
	TypeUint  ValueType = "UINT"
	TypeWord  ValueType = "WORD"
	TypeDint  ValueType = "DINT"
	TypeUdint ValueType = "UDINT"
	TypeDword ValueType = "DWORD"
	TypeReal  ValueType = "REAL"
	TypeLreal ValueType = "LREAL"
	TypeLword ValueType = "LWORD"
	TypeLint  ValueType = "LINT"
	TypeUlint ValueType = "ULINT"
)

// valueTypes mirrors the IecGlueValueType enum of the generated module.
var valueTypes = map[ValueType]bool{
	TypeBool: true, TypeByte: true, TypeSint: true, TypeUsint: true,
	TypeInt: true, TypeUint: true, TypeWord: true, TypeDint: true,
	TypeUdint: true, TypeDword: true, TypeReal: true, TypeLreal: true,
	TypeLword: true, TypeLint: true, TypeUlint: true,
}

// Known reports whether the tag has an IECVT_ enumerator.
func (t ValueType) Known() bool {
	return valueTypes[t]
}
