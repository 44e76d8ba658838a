package zorton

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MemoryOffset is the load address of the dump: a pointer p refers to file
// offset p - MemoryOffset.
const MemoryOffset = 0x3FE00

// Pointer is a 32-bit 68000 address as stored in the records. Zero means none.
type Pointer uint32

func (p Pointer) IsNull() bool { return p == 0 }

// FileOffset maps the pointer into the dump using base as the load address.
// The result may be negative or past the end of the data.
func (p Pointer) FileOffset(base uint32) int {
	return int(int64(p) - int64(base))
}

// PointerAt returns the address of a file offset for the given load address.
func PointerAt(fileOffset int, base uint32) Pointer {
	return Pointer(uint32(fileOffset) + base)
}

func (p Pointer) String() string { return fmt.Sprintf("0x%08x", uint32(p)) }

func (p Pointer) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Pointer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n uint32
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return fmt.Errorf("pointer must be a hex string or integer: %w", err)
		}
		*p = Pointer(n)
		return nil
	}
	v, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*p = Pointer(v)
	return nil
}

// ParseAddress accepts "0x3fe00", "3FE00h" style hex or plain decimal.
func ParseAddress(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	case strings.HasSuffix(s, "h"), strings.HasSuffix(s, "H"):
		s, base = s[:len(s)-1], 16
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

// hexOffset formats a file offset the way the reports print addresses.
func hexOffset(off int) string { return fmt.Sprintf("0x%08x", uint32(off)) }
