/*
Package tri reads and writes the sparse morph-target binary format ("PIRT").

All integers are little-endian. The layout is:

	magic        [4]byte  "PIRT"
	version      u16      must be 1
	setNameLen   u8
	setName      [setNameLen]byte (UTF-8)
	channelCount u16
	channels     channelCount times:
	    nameLen    u8
	    name       [nameLen]byte (UTF-8)
	    scale      f32
	    numAffected u16
	    entries    numAffected times: u16 index, i16 dx, i16 dy, i16 dz

Decode makes a single pass over the buffer and copies every string and entry
out, so the result does not alias the input.
*/
package tri
