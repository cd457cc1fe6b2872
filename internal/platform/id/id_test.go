package id_test

import (
	"testing"

	"momentum/internal/platform/id"
)

func TestLowestFree(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		used []int
		want int
	}{
		{name: "empty", used: nil, want: 1},
		{name: "gap", used: []int{1, 3, 4}, want: 2},
		{name: "dense", used: []int{1, 2, 3}, want: 4},
		{name: "unordered", used: []int{4, 2, 1}, want: 3},
		{name: "missing one", used: []int{2, 3}, want: 1},
		{name: "ignores non-positive", used: []int{0, -1, 1}, want: 2},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := id.LowestFree(tc.used); got != tc.want {
				t.Fatalf("LowestFree(%v) = %d, want %d", tc.used, got, tc.want)
			}
		})
	}
}
