package tri

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/aretw0/bodygen/pkg/domain"
)

// Encode serializes tri in the same layout Decode reads.
// Names longer than 255 bytes and counts above 65535 cannot be represented.
func Encode(tri *domain.TriFile) ([]byte, error) {
	if len(tri.Morphs) > math.MaxUint16 {
		return nil, fmt.Errorf("tri: %d channels exceeds %d", len(tri.Morphs), math.MaxUint16)
	}

	size := len(Magic) + 2 + 1 + len(tri.SetName) + 2
	for _, m := range tri.Morphs {
		size += 1 + len(m.Name) + 4 + 2 + len(m.Entries)*entrySize
	}

	buf := make([]byte, 0, size)
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint16(buf, Version)

	var err error
	if buf, err = appendShortStr(buf, tri.SetName); err != nil {
		return nil, err
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(tri.Morphs)))

	for _, m := range tri.Morphs {
		if len(m.Entries) > math.MaxUint16 {
			return nil, fmt.Errorf("tri: channel %q has %d entries, exceeds %d", m.Name, len(m.Entries), math.MaxUint16)
		}
		if buf, err = appendShortStr(buf, m.Name); err != nil {
			return nil, err
		}
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(m.Scale))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(m.Entries)))
		for _, e := range m.Entries {
			buf = binary.LittleEndian.AppendUint16(buf, e.Index)
			buf = binary.LittleEndian.AppendUint16(buf, uint16(e.DX))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(e.DY))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(e.DZ))
		}
	}
	return buf, nil
}

func appendShortStr(buf []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint8 {
		return nil, fmt.Errorf("tri: name %q is %d bytes, exceeds %d", s, len(s), math.MaxUint8)
	}
	buf = append(buf, byte(len(s)))
	return append(buf, s...), nil
}
