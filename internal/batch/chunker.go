package batch

// ChunkLines splits lines into consecutive chunks of exactly n lines each.
// Trailing lines that do not fill a complete chunk are dropped; the caller is
// responsible for warning about them. n <= 0 yields no chunks.
func ChunkLines(lines []string, n int) [][]string {
	if n <= 0 {
		return nil
	}
	usable := (len(lines) / n) * n
	if usable == 0 {
		return nil
	}
	chunks := make([][]string, 0, usable/n)
	for i := 0; i < usable; i += n {
		chunks = append(chunks, lines[i:i+n])
	}
	return chunks
}
