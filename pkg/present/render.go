// Package present renders the PPU's decoded tile cache for a human to look
// at (spec.md §4.8's presentation seam, explicitly out of core scope but
// carried here as the ambient "something has to draw the tiles" collaborator
// SPEC_FULL.md adds). Grounded on original_source/src/emu_window.rs's
// draw_vram_to_framebuffer for the screen composition (160x144, 20x18 tile
// grid, tileset[(ty*20+tx)%384]), on IntuitionAmiga-IntuitionEngine's
// video_chip.go for the image/draw scaling pipeline, and on hejops-gone's TUI
// debugger for the lipgloss-rendered text view.
package present

import (
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/pixelwell/dmgcore/pkg/host"
)

const (
	screenTilesX = 20
	screenTileY  = 18
	tileDim      = 8
	screenWidth  = screenTilesX * tileDim // 160
	screenHeight = screenTileY * tileDim  // 144
)

// frameImage composes the reference renderer's screen (spec.md §6, ground
// truth in emu_window.rs's draw_vram_to_framebuffer): the tile cache, read
// modulo its length, tiled across a 20x18 grid into a 160x144 image.
func frameImage(src host.TileSource) *image.RGBA {
	tiles := src.Tiles()
	img := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	for ty := 0; ty < screenTileY; ty++ {
		for tx := 0; tx < screenTilesX; tx++ {
			tile := tiles[(ty*screenTilesX+tx)%len(tiles)]
			for row := 0; row < tileDim; row++ {
				for col := 0; col < tileDim; col++ {
					r, g, b := tile[row][col].RGB()
					x := tx*tileDim + col
					y := ty*tileDim + row
					img.Set(x, y, image.NRGBA{R: r, G: g, B: b, A: 0xFF})
				}
			}
		}
	}
	return img
}

// RenderPNG writes the composed 160x144 screen to w as a PNG, scaled by
// magnifier using nearest-neighbor so individual pixels stay sharp
// (magnifier <= 1 means no scaling), matching emu_window.rs's
// SCREEN_MAGNIFIER.
func RenderPNG(src host.TileSource, w io.Writer, magnifier int) error {
	frame := frameImage(src)
	if magnifier <= 1 {
		return png.Encode(w, frame)
	}

	bounds := frame.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*magnifier, bounds.Dy()*magnifier))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), frame, bounds, draw.Src, nil)
	return png.Encode(w, scaled)
}

// shadeStyles maps each Shade to a lipgloss style whose background
// approximates the reference renderer's grayscale (spec.md §6), for a
// terminal view of the composed screen.
var shadeStyles = [4]lipgloss.Style{
	lipgloss.NewStyle().Background(lipgloss.Color("#FFFFFF")),
	lipgloss.NewStyle().Background(lipgloss.Color("#AAAAAA")),
	lipgloss.NewStyle().Background(lipgloss.Color("#555555")),
	lipgloss.NewStyle().Background(lipgloss.Color("#000000")),
}

// RenderANSI renders the same 20x18 composed screen as two-characters-per-
// pixel colored blocks, one text line per screen pixel row (144 lines), for
// `dmgcore tiles --ansi` and the watch TUI.
func RenderANSI(src host.TileSource) string {
	tiles := src.Tiles()

	var b strings.Builder
	for ty := 0; ty < screenTileY; ty++ {
		for row := 0; row < tileDim; row++ {
			for tx := 0; tx < screenTilesX; tx++ {
				tile := tiles[(ty*screenTilesX+tx)%len(tiles)]
				for col := 0; col < tileDim; col++ {
					b.WriteString(shadeStyles[tile[row][col]].Render("  "))
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
