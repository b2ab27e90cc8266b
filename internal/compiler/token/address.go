package token

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrIndexOverflow = errors.New("index does not fit in 16 bits")

// DecodeAddress extracts the major and minor index from a located variable
// name such as "__IX12_3" (major 12, minor 3) or "__QW7" (major 7, minor 0).
//
// Digits are read the way atoi reads them: leading decimal digits only, an
// empty run decodes to 0. Nothing else about the suffix is validated.
func DecodeAddress(name string) (major, minor uint16, err error) {
	if len(name) < PrefixLen {
		return 0, 0, fmt.Errorf("name %q is shorter than its %d character location prefix", name, PrefixLen)
	}

	majorPart, minorPart, _ := strings.Cut(name[PrefixLen:], "_")

	major, err = leadingIndex(majorPart)
	if err != nil {
		return 0, 0, fmt.Errorf("major index of %q: %w", name, err)
	}
	minor, err = leadingIndex(minorPart)
	if err != nil {
		return 0, 0, fmt.Errorf("minor index of %q: %w", name, err)
	}
	return major, minor, nil
}

func leadingIndex(s string) (uint16, error) {
	var n uint32
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + uint32(s[i]-'0')
		if n > math.MaxUint16 {
			return 0, ErrIndexOverflow
		}
	}
	return uint16(n), nil
}
