package util

import (
	"fmt"
	"strings"
	"unsafe"
)

// ArrayToString renders every element as zero-padded hex, most significant
// nibble first, with no separators.
func ArrayToString[T uint8 | uint16 | uint32 | uint64](arr []T) string {
	var sb strings.Builder

	for _, v := range arr {
		bitWidth := int(unsafe.Sizeof(v) * 8)
		sb.WriteString(fmt.Sprintf("%0[1]*[2]x", bitWidth/4, v))
	}

	return sb.String()
}

// WordsToString is ArrayToString with a space between elements, for logging
// windows of generator output.
func WordsToString[T uint8 | uint16 | uint32 | uint64](arr []T) string {
	parts := make([]string, len(arr))

	for i := range arr {
		parts[i] = ArrayToString(arr[i : i+1])
	}

	return strings.Join(parts, " ")
}
