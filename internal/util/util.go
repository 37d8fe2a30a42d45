// Package util holds small formatting helpers shared by handlers and usecases.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

var byteUnits = []string{"KB", "MB", "GB", "TB"}

// ContentETag returns a strong ETag for a response body.
func ContentETag(data []byte) string {
	sum := sha256.Sum256(data)

	return strconv.Quote(hex.EncodeToString(sum[:16]))
}

// FormatBytes renders a size in binary units with one decimal, e.g. "976.6 KB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}

	value := float64(n) / 1024
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	return strconv.FormatFloat(value, 'f', 1, 64) + " " + byteUnits[unit]
}
