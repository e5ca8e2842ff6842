package video

// spritePriority tracks, for every column on the current scanline, which
// sprite (if any) has already claimed that pixel. Two sprites that overlap
// the same pixel are resolved by X coordinate first, then by OAM index: the
// sprite with the smaller X wins, and ties on X are broken by whichever
// sprite appears earlier in OAM.
type spritePriority struct {
	ownerIndex [ScreenWidth]int // -1 = unclaimed
	ownerX     [ScreenWidth]int
}

func newSpritePriority() *spritePriority {
	p := &spritePriority{}
	p.reset()
	return p
}

func (p *spritePriority) reset() {
	for i := range p.ownerIndex {
		p.ownerIndex[i] = -1
	}
}

// tryClaim reports whether the sprite at oamIndex, with its leftmost pixel
// at spriteX, should draw its pixel at column x: true if the column is
// unclaimed, or if this sprite outranks whichever sprite claimed it before
// (lower X wins, ties broken by lower OAM index).
func (p *spritePriority) tryClaim(x int, oamIndex int, spriteX int) bool {
	if x < 0 || x >= ScreenWidth {
		return false
	}

	current := p.ownerIndex[x]
	if current == -1 {
		p.ownerIndex[x] = oamIndex
		p.ownerX[x] = spriteX
		return true
	}

	if spriteX < p.ownerX[x] || (spriteX == p.ownerX[x] && oamIndex < current) {
		p.ownerIndex[x] = oamIndex
		p.ownerX[x] = spriteX
		return true
	}

	return false
}
