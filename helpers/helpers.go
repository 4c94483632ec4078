package helpers

import (
	// Go Internal Packages
	"encoding/json"
	"fmt"
	"time"
)

// PrintStruct prints a given struct in pretty format with indent
func PrintStruct(v any) {
	res, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(res))
}

// MillisFromTime converts a time to epoch milliseconds, the unit every
// transaction timestamp uses.
func MillisFromTime(t time.Time) int64 {
	return t.UnixMilli()
}

// TimeFromMillis is the inverse of MillisFromTime.
func TimeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
