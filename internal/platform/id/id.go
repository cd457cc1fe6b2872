package id

// LowestFree returns the smallest positive integer absent from used.
// Gaps left by removed records are filled before the sequence grows.
func LowestFree(used []int) int {
	taken := make(map[int]struct{}, len(used))
	for _, v := range used {
		if v > 0 {
			taken[v] = struct{}{}
		}
	}
	next := 1
	for {
		if _, ok := taken[next]; !ok {
			return next
		}
		next++
	}
}
