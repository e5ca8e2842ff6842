package video

// tileRow is one 8-pixel row of a tile, stored as the two raw bitplane bytes
// VRAM holds them in: bit 7 of each byte is the leftmost pixel.
type tileRow struct {
	low, high uint8
}

// colorIndexAt returns the 2-bit color index of the pixel at the given
// column (0 = leftmost), combining the low bitplane byte's bit as the low
// bit of the index and the high bitplane byte's bit as the high bit.
func (r tileRow) colorIndexAt(column uint8) uint8 {
	shift := 7 - column
	lo := (r.low >> shift) & 1
	hi := (r.high >> shift) & 1
	return hi<<1 | lo
}

// fetchTileRow reads one 8x1 row of tile data out of VRAM. base is the tile's
// 16-byte block start address, row is 0-7.
func fetchTileRow(vram *[0x2000]byte, base uint16, row uint8) tileRow {
	offset := base - 0x8000 + uint16(row)*2
	return tileRow{
		low:  vram[offset],
		high: vram[offset+1],
	}
}

// tileDataAddress resolves a tile index to its 16-byte block's base address,
// honoring LCDC bit 4's choice of addressing mode. In the 0x8800 mode, the
// index is treated as signed with 0x9000 as its zero point.
func tileDataAddress(index uint8, unsignedMode bool) uint16 {
	if unsignedMode {
		return 0x8000 + uint16(index)*16
	}
	return uint16(0x9000 + int32(int8(index))*16)
}
