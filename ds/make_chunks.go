package ds

// MakeChunks groups elements within a slice into smaller "chunks",
// each contains n elements. The last chunk holds the remainder. For example,
//
//	MakeChunks([]int{1, 2, 3, 4, 5}, 2)
//
// should return this exact value:
//
//	[][]int{{1, 2}, {3, 4}, {5}}
//
// Chunks share the backing array of ts.
func MakeChunks[T any](ts []T, n int) [][]T {
	if n <= 0 {
		return [][]T{}
	}
	chunks := make([][]T, 0, len(ts)/n+1)
	for i := 0; i < len(ts); i += n {
		end := i + n
		if end > len(ts) {
			end = len(ts)
		}
		chunks = append(chunks, ts[i:end:end])
	}
	return chunks
}
