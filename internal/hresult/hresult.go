// Package hresult holds the well-known 32-bit status codes and the
// field helpers needed to describe them. It is deliberately not a mapping
// table from Go errors to codes: an error either reports its own code or
// gets the configured fallback.
package hresult

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known status codes. Values are the int32 reinterpretation of the
// usual unsigned hex spelling.
const (
	S_OK         int32 = 0
	S_FALSE      int32 = 1
	E_NOTIMPL    int32 = -2147467263 // 0x80004001
	E_POINTER    int32 = -2147467261 // 0x80004003
	E_ABORT      int32 = -2147467260 // 0x80004004
	E_FAIL       int32 = -2147467259 // 0x80004005
	E_INVALIDARG int32 = -2147024809 // 0x80070057
)

const (
	severityBit   = 31
	facilityShift = 16
	facilityMask  = 0x1FFF
	codeMask      = 0xFFFF
)

// Failed reports whether the severity bit is set
func Failed(code int32) bool {
	return code < 0
}

// Succeeded reports whether the severity bit is clear
func Succeeded(code int32) bool {
	return code >= 0
}

// Facility returns the facility field
func Facility(code int32) uint16 {
	return uint16((uint32(code) >> facilityShift) & facilityMask)
}

// Code returns the low 16-bit code field
func Code(code int32) uint16 {
	return uint16(uint32(code) & codeMask)
}

// Make assembles a status code from its fields
func Make(failed bool, facility, code uint16) int32 {
	var v uint32
	if failed {
		v = 1 << severityBit
	}
	v |= (uint32(facility) & facilityMask) << facilityShift
	v |= uint32(code)

	return int32(v)
}

// Format renders the code in its conventional 0xXXXXXXXX form
func Format(code int32) string {
	return fmt.Sprintf("0x%08X", uint32(code))
}

// Parse reads a code literal. Decimal literals must fit in int32; hex
// literals (0x prefix) may span the full unsigned 32-bit range and are
// reinterpreted bit for bit, which is how failure codes are usually written.
func Parse(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		u, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return int32(uint32(u)), true
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}

	return int32(n), true
}
