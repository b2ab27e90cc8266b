package lib

const hexChars = "0123456789ABCDEF"

// HexChars renders each byte as two upper-case hex digits, high nibble first.
func HexChars(b []byte) []byte {
	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		out = append(out, hexChars[(v&0xF0)>>4], hexChars[v&0x0F])
	}
	return out
}
