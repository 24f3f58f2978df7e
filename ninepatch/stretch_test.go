package ninepatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dstSizes(spans []Span) []int {
	sizes := make([]int, len(spans))
	for ii, s := range spans {
		sizes[ii] = s.DstSize()
	}
	return sizes
}

func TestStretch(t *testing.T) {
	for _, tt := range []struct {
		Label string
		Divs  []int32
		Src   int
		Dst   int
		Want  []int
	}{
		{
			Label: "identity",
			Divs:  []int32{2, 4},
			Src:   6, Dst: 6,
			Want: []int{2, 2, 2},
		},
		{
			Label: "grow single region",
			Divs:  []int32{2, 4},
			Src:   6, Dst: 10,
			Want: []int{2, 6, 2},
		},
		{
			Label: "grow proportionally",
			Divs:  []int32{1, 3, 4, 6},
			Src:   8, Dst: 10,
			Want: []int{1, 3, 1, 3, 2},
		},
		{
			Label: "remainder goes to the last region",
			Divs:  []int32{0, 1, 2, 3},
			Src:   3, Dst: 4,
			Want: []int{0, 1, 1, 2, 0},
		},
		{
			Label: "zero width stretch region",
			Divs:  []int32{3, 3},
			Src:   6, Dst: 10,
			Want: []int{3, 4, 3},
		},
		{
			Label: "shrink below static size",
			Divs:  []int32{2, 4},
			Src:   6, Dst: 2,
			Want: []int{1, 0, 1},
		},
		{
			Label: "negative destination",
			Divs:  []int32{2, 4},
			Src:   6, Dst: -3,
			Want: []int{0, 0, 0},
		},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			spans := Stretch(tt.Divs, tt.Src, tt.Dst)
			assert.Equal(t, tt.Want, dstSizes(spans))
		})
	}
}

// TestStretchCoversDestination checks that spans tile the source and the
// destination without gaps.
func TestStretchCoversDestination(t *testing.T) {
	divs := []int32{3, 5, 9, 14}
	for dst := 0; dst < 64; dst++ {
		spans := Stretch(divs, 20, dst)
		assert.Len(t, spans, len(divs)+1)
		for ii := 1; ii < len(spans); ii++ {
			assert.Equal(t, spans[ii-1].SrcMax, spans[ii].SrcMin)
			assert.Equal(t, spans[ii-1].DstMax, spans[ii].DstMin)
		}
		assert.Equal(t, 20, spans[len(spans)-1].SrcMax)
		assert.Equal(t, dst, spans[len(spans)-1].DstMax, "dst %d", dst)
		for ii, s := range spans {
			assert.Equal(t, ii%2 == 1, s.Stretch)
			assert.GreaterOrEqual(t, s.DstSize(), 0)
		}
	}
}
