package video

import "github.com/sdslabs/gbemu-sub000/gameboy/addr"

// bgPixel is the background/window layer's contribution to one column,
// produced before the sprite pass decides whether to draw over it. Keeping
// this as an intermediate seam (rather than writing straight to the
// FrameBuffer) is what lets the sprite pass implement "behind background
// color 0 is transparent" without re-deriving the background color index.
type bgPixel struct {
	colorIndex uint8
	fromWindow bool
}

// drawScanline renders the current LY into the framebuffer: background (or
// a row of BGP colour 0 if BG/window are disabled), then window, then sprites.
func (p *PPU) drawScanline() {
	if int(p.ly) >= ScreenHeight {
		return
	}

	row := p.renderBackgroundAndWindowRow()
	p.renderSpritesRow(row)
}

func (p *PPU) renderBackgroundAndWindowRow() [ScreenWidth]bgPixel {
	var row [ScreenWidth]bgPixel

	bgEnabled := p.lcdc&(1<<lcdcBGEnable) != 0
	unsignedTiles := p.lcdc&(1<<lcdcTileDataSelect) != 0

	windowEnabled := bgEnabled && p.lcdc&(1<<lcdcWindowEnable) != 0 && int(p.ly) >= int(p.wy) && p.wx <= 166
	usedWindowThisLine := false

	for x := 0; x < ScreenWidth; x++ {
		if windowEnabled && x+7 >= int(p.wx) {
			usedWindowThisLine = true
			mapBase := p.tileMapBase(lcdcWindowTileMap)
			tileCol := (x + 7 - int(p.wx)) / 8
			tileRowIdx := p.windowLine / 8
			pixelCol := uint8((x + 7 - int(p.wx)) % 8)
			pixelRow := uint8(p.windowLine % 8)
			idx := p.fetchColorIndex(mapBase, tileCol, tileRowIdx, pixelCol, pixelRow, unsignedTiles)
			row[x] = bgPixel{colorIndex: idx, fromWindow: true}
			continue
		}

		if !bgEnabled {
			row[x] = bgPixel{colorIndex: 0}
			continue
		}

		mapBase := p.tileMapBase(lcdcBGTileMap)
		scrolledX := (x + int(p.scx)) & 0xFF
		scrolledY := (int(p.ly) + int(p.scy)) & 0xFF
		tileCol := scrolledX / 8
		tileRowIdx := scrolledY / 8
		idx := p.fetchColorIndex(mapBase, tileCol, tileRowIdx, uint8(scrolledX%8), uint8(scrolledY%8), unsignedTiles)
		row[x] = bgPixel{colorIndex: idx}
	}

	if usedWindowThisLine {
		p.windowLine++
	}

	for x := 0; x < ScreenWidth; x++ {
		p.fb.SetPixel(x, int(p.ly), applyPalette(row[x].colorIndex, p.bgp))
	}

	return row
}

func (p *PPU) tileMapBase(lcdcBit uint8) uint16 {
	if p.lcdc&(1<<lcdcBit) != 0 {
		return addr.TileMap1
	}
	return addr.TileMap0
}

func (p *PPU) fetchColorIndex(mapBase uint16, tileCol, tileRow int, pixelCol, pixelRow uint8, unsignedTiles bool) uint8 {
	mapOffset := mapBase - 0x8000 + uint16(tileRow*32+tileCol)
	tileIndex := p.vram[mapOffset]
	tileBase := tileDataAddress(tileIndex, unsignedTiles)
	r := fetchTileRow(p.vram, tileBase, pixelRow)
	return r.colorIndexAt(pixelCol)
}

func (p *PPU) renderSpritesRow(bgRow [ScreenWidth]bgPixel) {
	if p.lcdc&(1<<lcdcSpriteEnable) == 0 {
		return
	}

	spriteHeight := 8
	if p.lcdc&(1<<lcdcSpriteSize) != 0 {
		spriteHeight = 16
	}

	sprites := spritesOnScanline(p.oam, int(p.ly), spriteHeight)
	p.priority.reset()

	for _, s := range sprites {
		tileIndex, rowInTile := tileRowForSprite(s, int(p.ly), spriteHeight)
		tileBase := tileDataAddress(tileIndex, true) // sprite tiles always use the 0x8000 addressing mode
		r := fetchTileRow(p.vram, tileBase, rowInTile)

		for col := 0; col < 8; col++ {
			screenX := s.x + col
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}

			sampleCol := uint8(col)
			if s.flipX {
				sampleCol = 7 - sampleCol
			}
			colorIndex := r.colorIndexAt(sampleCol)
			if colorIndex == 0 {
				continue // transparent
			}

			if !p.priority.tryClaim(screenX, s.oamIndex, s.x) {
				continue
			}

			if s.behind && bgRow[screenX].colorIndex != 0 {
				continue
			}

			palette := p.obp0
			if s.useOBP1 {
				palette = p.obp1
			}
			p.fb.SetPixel(screenX, int(p.ly), applyPalette(colorIndex, palette))
		}
	}
}
