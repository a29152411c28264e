package utils

import "unicode"

// SplitText splits a long string into chunks of approximately 'chunkSize' characters.
// It includes an 'overlap' to preserve context at boundaries, and prefers to
// end a chunk on whitespace when one is near so words are not cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	if overlap >= chunkSize {
		overlap = 0 // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			end = snapToWhitespace(runes, i, end)
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}

		next := end - overlap
		if next <= i {
			next = i + 1
		}
		i = next
	}

	return chunks
}

// snapToWhitespace walks back from 'end' looking for a space or newline
// within the last tenth of the chunk. Falls back to the hard cut when the
// chunk has no usable boundary.
func snapToWhitespace(runes []rune, start, end int) int {
	limit := end - (end-start)/10
	if limit <= start {
		return end
	}
	for i := end - 1; i >= limit; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return end
}
