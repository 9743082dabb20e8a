// Package binary holds the little endian, offset-tracking helpers used to
// read and write fixed layout account data.
//
// Every helper reads or writes at src[*offset:] / dst[*offset:] and advances
// offset past the value. Callers are responsible for bounds checking the
// buffer against the layout size up front.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

// OptionTagNone and OptionTagSome are the COption discriminants used by the
// SPL programs.
const (
	OptionTagNone = 0
	OptionTagSome = 1
)

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:*offset+ed25519.PublicKeySize], src)
	*offset += ed25519.PublicKeySize
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func PutOptionalKey32(dst []byte, src []byte, offset *int, optionSize int) {
	if len(src) > 0 {
		binary.LittleEndian.PutUint32(dst[*offset:], OptionTagSome)
		copy(dst[*offset+optionSize:], src)
	}
	*offset += optionSize + ed25519.PublicKeySize
}

// GetOptionalKey32 returns false if the option tag is neither none nor some.
func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, optionSize int) bool {
	tag, ok := getOptionTag(src[*offset:], optionSize)
	if !ok {
		return false
	}
	if tag == OptionTagSome {
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[*offset+optionSize:])
	}
	*offset += optionSize + ed25519.PublicKeySize
	return true
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func PutOptionalUint64(dst []byte, v *uint64, offset *int, optionSize int) {
	if v != nil {
		binary.LittleEndian.PutUint32(dst[*offset:], OptionTagSome)
		binary.LittleEndian.PutUint64(dst[*offset+optionSize:], *v)
	}
	*offset += optionSize + 8
}

// GetOptionalUint64 returns false if the option tag is neither none nor some.
func GetOptionalUint64(src []byte, dst **uint64, offset *int, optionSize int) bool {
	tag, ok := getOptionTag(src[*offset:], optionSize)
	if !ok {
		return false
	}
	if tag == OptionTagSome {
		val := binary.LittleEndian.Uint64(src[*offset+optionSize:])
		*dst = &val
	}
	*offset += optionSize + 8
	return true
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func getOptionTag(src []byte, optionSize int) (uint32, bool) {
	var tag uint32
	switch optionSize {
	case 1:
		tag = uint32(src[0])
	case 4:
		tag = binary.LittleEndian.Uint32(src)
	default:
		return 0, false
	}
	return tag, tag == OptionTagNone || tag == OptionTagSome
}
