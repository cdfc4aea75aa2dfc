package dsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	testcases := map[string]struct {
		Input []int
		Left  []int
		Right []int
	}{
		"mixed":      {[]int{5, 8, 1, 9, 5, 2}, []int{1, 5, 2}, []int{9, 8}},
		"all-less":   {[]int{9, 3, 2, 1}, []int{3, 2, 1}, []int{}},
		"all-more":   {[]int{1, 3, 2, 9}, []int{}, []int{3, 2, 9}},
		"pivot-only": {[]int{4}, []int{}, []int{}},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			xs := append([]int(nil), tc.Input...)
			left, right := partition(xs, less)
			pivot := tc.Input[0]
			assert.ElementsMatch(t, tc.Left, left)
			assert.ElementsMatch(t, tc.Right, right)
			assert.Equal(t, pivot, xs[len(left)])
			for _, v := range left {
				assert.LessOrEqual(t, v, pivot)
			}
			for _, v := range right {
				assert.Greater(t, v, pivot)
			}
		})
	}
}
