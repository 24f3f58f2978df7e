package ninepatch

// Span maps one segment of the source bitmap onto the destination along a
// single axis. Offsets are half-open, [Min, Max).
type Span struct {
	SrcMin, SrcMax int
	DstMin, DstMax int
	// Stretch reports whether the segment is a stretchable region.
	Stretch bool
}

// SrcSize is the length of the segment in the source.
func (s Span) SrcSize() int { return s.SrcMax - s.SrcMin }

// DstSize is the length of the segment in the destination.
func (s Span) DstSize() int { return s.DstMax - s.DstMin }

// Stretch lays out the segments delimited by divs, sized src in the source,
// across dst pixels.
//
// Static segments keep their source size. Stretchable segments share what is
// left in proportion to their source size; rounding remainder goes to the
// last stretchable segment. When dst cannot fit the static segments, they are
// shrunk proportionally and the stretchable segments collapse to nothing.
//
// The returned spans are in grid order, such that span i is column (or row) i
// of the patch grid.
func Stretch(divs []int32, src, dst int) []Span {
	if dst < 0 {
		dst = 0
	}
	var (
		spans   = make([]Span, 0, len(divs)+1)
		prev    = 0
		static  = 0
		stretch = 0
	)
	for ii := 0; ii <= len(divs); ii++ {
		next := src
		if ii < len(divs) {
			next = int(divs[ii])
		}
		s := Span{SrcMin: prev, SrcMax: next, Stretch: ii%2 == 1}
		if s.Stretch {
			stretch += s.SrcSize()
		} else {
			static += s.SrcSize()
		}
		spans = append(spans, s)
		prev = next
	}
	var (
		remaining = dst - static
		sizes     = make([]int, len(spans))
	)
	if remaining < 0 {
		distribute(spans, sizes, false, static, dst)
	} else {
		for ii, s := range spans {
			if !s.Stretch {
				sizes[ii] = s.SrcSize()
			}
		}
		distribute(spans, sizes, true, stretch, remaining)
	}
	offset := 0
	for ii := range spans {
		spans[ii].DstMin = offset
		offset += sizes[ii]
		spans[ii].DstMax = offset
	}
	return spans
}

// distribute space among the spans of the given kind, proportionally to
// their source size out of total. The remainder goes to the last span of the
// kind.
func distribute(spans []Span, sizes []int, stretch bool, total, space int) {
	last, used := -1, 0
	for ii, s := range spans {
		if s.Stretch != stretch {
			continue
		}
		last = ii
		if total > 0 {
			sizes[ii] = s.SrcSize() * space / total
			used += sizes[ii]
		}
	}
	if last >= 0 {
		sizes[last] += space - used
	}
}
