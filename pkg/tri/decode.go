package tri

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/aretw0/bodygen/pkg/domain"
)

const (
	// Magic is the 4-byte file signature.
	Magic = "PIRT"
	// Version is the only supported format version.
	Version uint16 = 1

	entrySize = 8
)

// cursor is a little-endian reader that reports overruns as FormatError.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) ensure(n int) error {
	if c.off+n > len(c.buf) {
		return &FormatError{
			Kind:      ErrOverrun,
			Offset:    c.off,
			Needed:    n,
			Available: len(c.buf) - c.off,
		}
	}
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.ensure(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

func (c *cursor) f32() (float32, error) {
	if err := c.ensure(4); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(c.buf[c.off:]))
	c.off += 4
	return v, nil
}

func (c *cursor) str(n int) (string, error) {
	if err := c.ensure(n); err != nil {
		return "", err
	}
	s := string(c.buf[c.off : c.off+n])
	c.off += n
	return s, nil
}

// shortStr reads a u8 length-prefixed string.
func (c *cursor) shortStr() (string, error) {
	n, err := c.u8()
	if err != nil {
		return "", err
	}
	return c.str(int(n))
}

// Decode parses a complete TRI buffer.
func Decode(data []byte) (*domain.TriFile, error) {
	c := &cursor{buf: data}

	magic, err := c.str(len(Magic))
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &FormatError{Kind: ErrBadMagic, Magic: magic}
	}

	version, err := c.u16()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, &FormatError{Kind: ErrUnsupportedVersion, Version: version}
	}

	setName, err := c.shortStr()
	if err != nil {
		return nil, err
	}

	count, err := c.u16()
	if err != nil {
		return nil, err
	}

	tri := &domain.TriFile{
		SetName: setName,
		Morphs:  make([]domain.MorphChannel, 0, count),
	}
	for i := 0; i < int(count); i++ {
		ch, err := decodeChannel(c)
		if err != nil {
			return nil, err
		}
		tri.Morphs = append(tri.Morphs, ch)
	}

	return tri, nil
}

func decodeChannel(c *cursor) (domain.MorphChannel, error) {
	var ch domain.MorphChannel
	var err error

	if ch.Name, err = c.shortStr(); err != nil {
		return ch, err
	}
	if ch.Scale, err = c.f32(); err != nil {
		return ch, err
	}
	num, err := c.u16()
	if err != nil {
		return ch, err
	}

	ch.Entries = make([]domain.MorphEntry, num)
	for j := range ch.Entries {
		if err := c.ensure(entrySize); err != nil {
			return ch, err
		}
		b := c.buf[c.off : c.off+entrySize]
		ch.Entries[j] = domain.MorphEntry{
			Index: binary.LittleEndian.Uint16(b[0:]),
			DX:    int16(binary.LittleEndian.Uint16(b[2:])),
			DY:    int16(binary.LittleEndian.Uint16(b[4:])),
			DZ:    int16(binary.LittleEndian.Uint16(b[6:])),
		}
		c.off += entrySize
	}
	return ch, nil
}

// ReadFile reads and decodes the TRI file at path.
func ReadFile(path string) (*domain.TriFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tri, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tri, nil
}
