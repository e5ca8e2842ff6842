package memory

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	titleAddress          = 0x0134
	titleLength           = 15
	cartridgeTypeAddress  = 0x0147
	romSizeAddress        = 0x0148
	ramSizeAddress        = 0x0149
	headerChecksumAddress = 0x014D
	minHeaderLength       = 0x0150
)

// MBCKind identifies the banking hardware a cartridge declares in its header.
type MBCKind uint8

const (
	// MBC0Kind is a cartridge with no banking hardware at all.
	MBC0Kind MBCKind = iota
	// MBC1Kind switches ROM/RAM banks via writes into ROM address space.
	MBC1Kind
)

// Cartridge holds the raw, read-only ROM image and its parsed header.
//
// Cartridge bytes are never mutated after construction: writes into the
// 0x0000-0x7FFF / 0xA000-0xBFFF ranges are intercepted by the bus and
// reinterpreted as MBC register writes (see mbc.go), never applied to this
// slice.
type Cartridge struct {
	data []byte

	Title    string
	Type     uint8
	MBC      MBCKind
	HasRAM   bool
	HasBatt  bool
	ROMBanks int
	RAMBytes int
}

// ramSizeTable maps the cartridge header's RAM size code to a byte count.
var ramSizeTable = map[uint8]int{
	0: 0,
	1: 0x800,
	2: 0x2000,
	3: 0x8000,
	4: 0x20000,
	5: 0x10000,
}

// NewCartridge parses a raw ROM image into a Cartridge, validating the
// fields the bus needs to map banks correctly. It never mutates data.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < minHeaderLength {
		return nil, fmt.Errorf("cartridge: image is %d bytes, shorter than the %d-byte header region", len(data), minHeaderLength)
	}

	cartType := data[cartridgeTypeAddress]

	cart := &Cartridge{
		data:  append([]byte(nil), data...),
		Title: cleanTitle(data[titleAddress : titleAddress+titleLength]),
		Type:  cartType,
	}

	switch cartType {
	case 0x00:
		cart.MBC = MBC0Kind
	case 0x01:
		cart.MBC = MBC1Kind
	case 0x02:
		cart.MBC = MBC1Kind
		cart.HasRAM = true
	case 0x03:
		cart.MBC = MBC1Kind
		cart.HasRAM = true
		cart.HasBatt = true
	default:
		return nil, fmt.Errorf("cartridge: unsupported cartridge type 0x%02X", cartType)
	}

	romSizeCode := data[romSizeAddress]
	declaredROMBytes := 0x8000 << romSizeCode
	if len(cart.data) < declaredROMBytes {
		return nil, fmt.Errorf("cartridge: header declares %d ROM bytes but image has only %d", declaredROMBytes, len(cart.data))
	}
	cart.ROMBanks = declaredROMBytes / 0x4000

	ramSizeCode := data[ramSizeAddress]
	ramBytes, ok := ramSizeTable[ramSizeCode]
	if !ok {
		return nil, fmt.Errorf("cartridge: unrecognised RAM size code 0x%02X", ramSizeCode)
	}
	cart.RAMBytes = ramBytes

	return cart, nil
}

// ReadByte reads a byte from the raw cartridge image. Callers (the MBC
// implementations) are responsible for translating a banked address into an
// offset into this slice.
func (c *Cartridge) ReadByte(offset int) uint8 {
	return c.data[offset]
}

// Len returns the size of the raw cartridge image in bytes.
func (c *Cartridge) Len() int {
	return len(c.data)
}

// cleanTitle converts a raw title field into a printable, trimmed string:
// NUL bytes become spaces, non-printable bytes become '?', and the result is
// trimmed of surrounding whitespace.
func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			r = ' '
		case !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}
