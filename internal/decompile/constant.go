package decompile

import (
	"strconv"
	"strings"
)

// SplitValue splits an encoded constant value such as "UINT:5" into its
// radix prefix and digits. Values without a prefix have prefix "".
func SplitValue(v string) (prefix, digits string) {
	if i := strings.IndexByte(v, ':'); i > 0 {
		return v[:i], v[i+1:]
	}
	return "", v
}

// Constant renders an encoded value with its width the way it would be
// written in source: 4'b1010, 8'hff, 5, "text".
func Constant(value string, size int64) string {
	prefix, digits := SplitValue(value)
	sized := func(radix string) string {
		if size > 0 {
			return strconv.FormatInt(size, 10) + "'" + radix + digits
		}
		return "'" + radix + digits
	}
	switch prefix {
	case "BIN":
		return sized("b")
	case "HEX":
		return sized("h")
	case "OCT":
		return sized("o")
	case "DEC":
		return sized("d")
	case "STRING":
		return strconv.Quote(digits)
	default: // INT, UINT, REAL, TIME
		return digits
	}
}
