package quadedge

import "errors"

// ErrIndexOutOfRange indicates a region or line index exceeds its packed
// field width (15 bits / 32766 max for region indices, 12 bits / 4094 max
// for line indices — spec.md §3).
var ErrIndexOutOfRange = errors.New("quadedge: index out of packed range")

// Packed constraint word layout (spec.md §3), kept bit-for-bit because it
// is observable through the wire format and through §8's bit-field tests.
const (
	lowerIndexMask  = 0x7FFF // bits 0-14
	lowerIndexUnset = lowerIndexMask
	maxRegionIndex  = lowerIndexMask - 1 // 32766

	upperIndexShift = 15
	upperIndexMask  = 0xFFF // bits 15-26 (pre-shift)
	upperIndexUnset = upperIndexMask
	maxLineIndex    = upperIndexMask - 1 // 4094

	bitConstrained  = 1 << 27
	bitLineMember   = 1 << 28
	bitRegionMember = 1 << 29
	bitRegionBorder = 1 << 30
	bitSynthetic    = 1 << 31
)

// constraintSlot returns the dual (odd) index that physically carries e's
// constraint word, regardless of which direction of the edge e names.
func constraintSlot(e int32) int32 { return e | 1 }

func (p *Pool) word(e int32) uint32 { return p.record(constraintSlot(e)).constraint }

func (p *Pool) setWord(e int32, w uint32) { p.record(constraintSlot(e)).constraint = w }

// IsConstrained reports the CONSTRAINED bit: a forced edge, either a linear
// constraint segment or a region border.
func (p *Pool) IsConstrained(e int32) bool { return p.word(e)&bitConstrained != 0 }

// SetConstrained sets or clears the CONSTRAINED bit directly. Prefer
// SetLineIndex/SetBorderIndex, which set it as a side effect along with
// the appropriate index field; the tunnelling path uses this to clear the
// bit on a constrained edge it flips through when crossing is allowed, and
// to restore it if that insertion is rolled back.
func (p *Pool) SetConstrained(e int32, v bool) { p.setBit(e, bitConstrained, v) }

// IsLineMember reports the LINE_MEMBER bit.
func (p *Pool) IsLineMember(e int32) bool { return p.word(e)&bitLineMember != 0 }

// IsRegionMember reports the REGION_MEMBER bit.
func (p *Pool) IsRegionMember(e int32) bool { return p.word(e)&bitRegionMember != 0 }

// IsRegionBorder reports the REGION_BORDER bit.
func (p *Pool) IsRegionBorder(e int32) bool { return p.word(e)&bitRegionBorder != 0 }

// IsSynthetic reports the SYNTHETIC bit: an edge introduced as a byproduct
// of constraint tunnelling rather than directly requested by the caller.
func (p *Pool) IsSynthetic(e int32) bool { return p.word(e)&bitSynthetic != 0 }

// SetSynthetic sets or clears the SYNTHETIC bit.
func (p *Pool) SetSynthetic(e int32, v bool) { p.setBit(e, bitSynthetic, v) }

func (p *Pool) setBit(e int32, bit uint32, v bool) {
	w := p.word(e)
	if v {
		w |= bit
	} else {
		w &^= bit
	}
	p.setWord(e, w)
}

// CopyConstraint overwrites dst's full packed constraint word with src's.
// Used when splitting a constrained edge: both resulting sub-edges must
// inherit the original's complete word (index, membership, and border
// flags alike), not just the CONSTRAINED bit.
func (p *Pool) CopyConstraint(dst, src int32) { p.setWord(dst, p.word(src)) }

// BorderIndex returns the region-border index stamped in the lower 15
// bits, or -1 if unset.
func (p *Pool) BorderIndex(e int32) int32 {
	v := p.word(e) & lowerIndexMask
	if v == lowerIndexUnset {
		return -1
	}

	return int32(v)
}

// SetBorderIndex stamps idx as the region-border index and sets
// REGION_BORDER, REGION_MEMBER, and CONSTRAINED (REGION_BORDER implies
// both, per spec.md §3). idx must be in [0, 32766], or -1.
//
// Passing -1 clears only the lower 15-bit index field; it deliberately
// leaves REGION_BORDER and REGION_MEMBER set, matching the documented
// source behavior spec.md §9 Open Question 2 requires preserving.
func (p *Pool) SetBorderIndex(e int32, idx int32) error {
	if idx < -1 || idx > maxRegionIndex {
		return ErrIndexOutOfRange
	}

	w := p.word(e) &^ uint32(lowerIndexMask)
	if idx < 0 {
		w |= lowerIndexUnset
	} else {
		w |= uint32(idx)
		w |= bitRegionBorder | bitRegionMember | bitConstrained
	}
	p.setWord(e, w)

	return nil
}

// RegionInteriorIndex returns the region-interior index stamped in the
// lower 15 bits, or -1 if unset. The field is shared with BorderIndex;
// callers distinguish the two uses via IsRegionBorder.
func (p *Pool) RegionInteriorIndex(e int32) int32 { return p.BorderIndex(e) }

// SetRegionInteriorIndex stamps idx as a region's interior index and sets
// REGION_MEMBER, but clears CONSTRAINED (spec.md §4.3: "setting a
// region-interior index also sets REGION_MEMBER but clears CONSTRAINED").
// idx must be in [0, 32766], or -1 to clear.
func (p *Pool) SetRegionInteriorIndex(e int32, idx int32) error {
	if idx < -1 || idx > maxRegionIndex {
		return ErrIndexOutOfRange
	}

	w := p.word(e) &^ uint32(lowerIndexMask)
	if idx < 0 {
		w |= lowerIndexUnset
	} else {
		w |= uint32(idx)
		w |= bitRegionMember
		w &^= bitConstrained
	}
	p.setWord(e, w)

	return nil
}

// LineIndex returns the constraint-line index stamped in bits 15-26, or
// -1 if unset.
func (p *Pool) LineIndex(e int32) int32 {
	v := (p.word(e) >> upperIndexShift) & upperIndexMask
	if v == upperIndexUnset {
		return -1
	}

	return int32(v)
}

// SetLineIndex stamps idx as the constraint-line index and sets
// LINE_MEMBER and CONSTRAINED. idx must be in [0, 4094], or -1 to clear
// (clearing the index field only; LINE_MEMBER/CONSTRAINED are left as-is,
// mirroring SetBorderIndex's -1 semantics for bit-field coexistence,
// spec.md §8 property 6).
func (p *Pool) SetLineIndex(e int32, idx int32) error {
	if idx < -1 || idx > maxLineIndex {
		return ErrIndexOutOfRange
	}

	w := p.word(e) &^ (uint32(upperIndexMask) << upperIndexShift)
	if idx < 0 {
		w |= uint32(upperIndexUnset) << upperIndexShift
	} else {
		w |= uint32(idx) << upperIndexShift
		w |= bitLineMember | bitConstrained
	}
	p.setWord(e, w)

	return nil
}
