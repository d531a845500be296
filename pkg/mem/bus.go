// Package mem implements the flat 64 KiB address-space router (spec.md
// §4.5), grounded on original_source/src/memory.rs's MemoryBus (VRAM
// delegation to the GPU) and styled after the teacher's constructor-option
// pattern for optional behavior (cobra's flag-bound RunE closures in
// cmd/z80opt/main.go use the same "functional option" shape for optional
// knobs).
package mem

import "github.com/pixelwell/dmgcore/pkg/ppu"

const (
	vramStart = 0x8000
	// vramEnd covers the full 0x2000-byte VRAM window the PPU owns
	// (spec.md §4.6), not just the tile-data sub-range named in §4.5 --
	// map/attribute bytes (0x9800-0x9FFF) still need to reach the PPU so
	// TileMapByte can serve them.
	vramEnd  = 0xA000
	stackTop = 0xFFFE
)

// Option configures a Bus at construction time.
type Option func(*Bus)

// WithStackGuard toggles the POP-when-SP>=0xFFFE guard (spec.md §7.4,
// §9 "Stack guard"). Defaults to enabled.
func WithStackGuard(enabled bool) Option {
	return func(b *Bus) { b.stackGuard = enabled }
}

// Bus is the flat memory backing for the full 0x0000-0xFFFF address space,
// with VRAM reads/writes delegated to a PPU.
type Bus struct {
	flat       [0x10000]byte
	ppu        *ppu.PPU
	stackGuard bool
}

// New returns a Bus backed by the given PPU, with the stack-underflow
// guard enabled by default.
func New(p *ppu.PPU, opts ...Option) *Bus {
	b := &Bus{ppu: p, stackGuard: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Read dispatches to the PPU for VRAM addresses, and to the flat array
// otherwise (spec.md §4.5).
func (b *Bus) Read(addr uint16) byte {
	if addr >= vramStart && addr < vramEnd {
		return b.ppu.ReadByte(addr - vramStart)
	}
	return b.flat[addr]
}

// Write dispatches like Read; PPU writes additionally maintain the tile
// cache.
func (b *Bus) Write(addr uint16, v byte) {
	if addr >= vramStart && addr < vramEnd {
		b.ppu.WriteByte(addr-vramStart, v)
		return
	}
	b.flat[addr] = v
}

// LoadROM copies image into the bus at offset 0, implementing
// host.Loader. Per spec.md §6, only the first 64 KiB is consumed.
func (b *Bus) LoadROM(image []byte) error {
	copy(b.flat[:], image)
	return nil
}

// Push writes a 16-bit value onto the stack, high byte first, decrementing
// SP before each byte (spec.md §4.4 PUSH).
func (b *Bus) Push(sp *uint16, v uint16) {
	*sp--
	b.Write(*sp, byte(v>>8))
	*sp--
	b.Write(*sp, byte(v))
}

// Pop reads a 16-bit value off the stack, low byte first. If the stack
// guard is enabled and sp >= 0xFFFE (nothing has been pushed), it returns 0
// without advancing sp, per spec.md §7.4.
func (b *Bus) Pop(sp *uint16) uint16 {
	if b.stackGuard && *sp >= stackTop {
		return 0
	}
	lo := b.Read(*sp)
	*sp++
	hi := b.Read(*sp)
	*sp++
	return uint16(hi)<<8 | uint16(lo)
}
