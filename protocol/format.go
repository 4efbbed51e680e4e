// Package protocol decodes the BLOM wire format: a compact, little-endian,
// struct-of-arrays graph payload decoded in a single forward pass. Numeric
// sections are read without per-element allocation; each label becomes its
// own string.
package protocol

// Magic identifies a BLOM payload: the ASCII bytes "BLOM" read as a
// big-endian u32. It is written little-endian like every other header
// field, so the first four payload bytes are "MOLB".
const Magic uint32 = 0x424C4F4D

// HeaderSize is the fixed size, in bytes, of the BLOM header.
const HeaderSize = 16

// Version lists the wire versions this decoder recognizes.
const (
	Version1 uint16 = 1
)

// Flag bits carried in the header's flags field.
const (
	// FlagHasLabels indicates a label offset table and label byte blob
	// follow the header.
	FlagHasLabels uint16 = 1 << 0

	// FlagHasCommunity indicates a per-node community-id section follows
	// the degree array. Resolves the spec's open question on community
	// coloring: rather than overload degree, a dedicated optional
	// section carries it.
	FlagHasCommunity uint16 = 1 << 1
)

// Header is the fixed-size BLOM header.
type Header struct {
	Magic     uint32
	Version   uint16
	NodeCount uint32
	EdgeCount uint32
	Flags     uint16
}

// HasLabels reports whether the payload carries a label section.
func (h Header) HasLabels() bool { return h.Flags&FlagHasLabels != 0 }

// HasCommunity reports whether the payload carries a community-id section.
func (h Header) HasCommunity() bool { return h.Flags&FlagHasCommunity != 0 }
