// Package rom implements the cartridge header parser (spec.md §4.7),
// grounded on original_source/src/rom.rs's ROM struct and its
// get_rom_name/get_header_checksum/get_cartridge_type_name/get_region
// functions. The one correction applied throughout: size is read from
// 0x0148, not 0x0147 (the cartridge-type byte) the source reads from by
// mistake (spec.md §9 Open Questions).
package rom

import "fmt"

const (
	titleStart    = 0x0134
	titleEnd      = 0x0144
	sizeBytePos   = 0x0148
	typeBytePos   = 0x0147
	regionBytePos = 0x014A
	versionPos    = 0x014C
	checksumPos   = 0x014D
	logoStart     = 0x0104
	logoEnd       = 0x0134
)

// nintendoLogo is the canonical 48-byte boot logo real hardware compares
// against before running a cartridge.
var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header is the parsed cartridge header (spec.md §3 "ROM image").
type Header struct {
	Title             string
	SizeKiB           int
	Region            string
	CartridgeType     byte
	CartridgeTypeName string
	Version           byte
	HeaderChecksum    byte
	StoredChecksum    byte
	data              []byte
}

// Parse extracts a Header from up to the first 64 KiB of a cartridge
// image. It tolerates shorter files only when the header bytes
// (0x0134..0x014D) are present (spec.md §6); any shorter buffer is an
// error.
func Parse(data []byte) (Header, error) {
	if len(data) <= checksumPos {
		return Header{}, fmt.Errorf("rom: image too short to contain a header: %d bytes", len(data))
	}

	typeByte := data[typeBytePos]
	h := Header{
		Title:             readTitle(data),
		SizeKiB:           32 * (1 << data[sizeBytePos]),
		Region:            regionName(data[regionBytePos]),
		CartridgeType:     typeByte,
		CartridgeTypeName: cartridgeTypeName(typeByte),
		Version:           data[versionPos],
		HeaderChecksum:    headerChecksum(data),
		StoredChecksum:    data[checksumPos],
		data:              data,
	}
	return h, nil
}

func readTitle(data []byte) string {
	end := titleStart
	for ; end < titleEnd; end++ {
		if data[end] == 0 {
			break
		}
	}
	return string(data[titleStart:end])
}

func headerChecksum(data []byte) byte {
	var checksum byte
	for addr := titleStart; addr <= versionPos; addr++ {
		checksum = checksum - data[addr] - 1
	}
	return checksum
}

func regionName(b byte) string {
	switch b {
	case 0x00:
		return "JAPAN"
	case 0x01:
		return "WORLD"
	default:
		return "UNKNOWN"
	}
}

// ValidateLogo compares the image's boot logo bytes (0x0104-0x0133)
// against the canonical Nintendo logo. A mismatch is never fatal here
// (spec.md §7 "non-fatal information... logged and processing
// continues"); it is informational only, since this core never gates
// boot on it the way real hardware does.
func (h Header) ValidateLogo() bool {
	if len(h.data) < logoEnd {
		return false
	}
	for i := 0; i < len(nintendoLogo); i++ {
		if h.data[logoStart+i] != nintendoLogo[i] {
			return false
		}
	}
	return true
}

// ChecksumValid reports whether the computed header checksum matches the
// stored byte at 0x014D.
func (h Header) ChecksumValid() bool {
	return h.HeaderChecksum == h.StoredChecksum
}

func cartridgeTypeName(b byte) string {
	switch b {
	case 0x00:
		return "ROM ONLY"
	case 0x01:
		return "MBC1"
	case 0x02:
		return "MBC1+RAM"
	case 0x03:
		return "MBC1+RAM+BATTERY"
	case 0x05:
		return "MBC2"
	case 0x06:
		return "MBC2+BATTERY"
	case 0x08:
		return "ROM+RAM"
	case 0x09:
		return "ROM+RAM+BATTERY"
	case 0x0B:
		return "MMM01"
	case 0x0C:
		return "MMM01+RAM"
	case 0x0D:
		return "MMM01+RAM+BATTERY"
	case 0x0F:
		return "MBC3+TIMER+BATTERY"
	case 0x10:
		return "MBC3+TIMER+RAM+BATTERY"
	case 0x11:
		return "MBC3"
	case 0x12:
		return "MBC3+RAM"
	case 0x13:
		return "MBC3+RAM+BATTERY"
	case 0x19:
		return "MBC5"
	case 0x1A:
		return "MBC5+RAM"
	case 0x1B:
		return "MBC5+RAM+BATTERY"
	case 0x1C:
		return "MBC5+RUMBLE"
	case 0x1D:
		return "MBC5+RUMBLE+RAM"
	case 0x1E:
		return "MBC5+RUMBLE+RAM+BATTERY"
	case 0x20:
		return "MBC6"
	case 0x22:
		return "MBC7+SENSOR+RUMBLE+RAM+BATTERY"
	case 0xFC:
		return "POCKET CAMERA"
	case 0xFD:
		return "BANDAI TAMA5"
	case 0xFE:
		return "HuC3"
	case 0xFF:
		return "HuC1+RAM+BATTERY"
	default:
		return "UNKNOWN"
	}
}
