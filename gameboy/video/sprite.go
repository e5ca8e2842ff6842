package video

// sprite is one parsed OAM entry.
type sprite struct {
	y, x      int
	tileIndex uint8
	oamIndex  int

	useOBP1 bool
	flipX   bool
	flipY   bool
	behind  bool
}

func parseSprite(raw []byte, oamIndex int) sprite {
	y := int(raw[0]) - 16
	x := int(raw[1]) - 8
	tile := raw[2]
	flags := raw[3]

	return sprite{
		y:         y,
		x:         x,
		tileIndex: tile,
		oamIndex:  oamIndex,
		useOBP1:   flags&0x10 != 0,
		flipX:     flags&0x20 != 0,
		flipY:     flags&0x40 != 0,
		behind:    flags&0x80 != 0,
	}
}

// spritesOnScanline scans all 40 OAM entries and returns up to 10 that
// intersect the given scanline, in OAM order (lowest index first), which is
// the order renderSpritesRow draws them in; spritePriority decides which
// sprite keeps each overlapping pixel.
func spritesOnScanline(oam *[0xA0]byte, ly int, spriteHeight int) []sprite {
	var found []sprite
	for i := 0; i < 40; i++ {
		raw := oam[i*4 : i*4+4]
		s := parseSprite(raw, i)
		if ly >= s.y && ly < s.y+spriteHeight {
			found = append(found, s)
			if len(found) == 10 {
				break
			}
		}
	}
	return found
}

// tileRowForSprite resolves which of a (possibly 8x16) sprite's two tiles,
// and which row within it, is visible at the given scanline, honoring
// vertical flip.
func tileRowForSprite(s sprite, ly int, spriteHeight int) (tileIndex uint8, row uint8) {
	line := ly - s.y
	if s.flipY {
		line = spriteHeight - 1 - line
	}
	if spriteHeight == 16 {
		tileIndex = s.tileIndex &^ 0x01
		if line >= 8 {
			tileIndex |= 0x01
			line -= 8
		}
	} else {
		tileIndex = s.tileIndex
	}
	return tileIndex, uint8(line)
}
