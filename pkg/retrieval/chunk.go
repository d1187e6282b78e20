package retrieval

import "strings"

// Chunk splits text into fixed-size pieces with the given overlap, breaking
// on whitespace where possible so words stay intact.
func Chunk(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}

		// Back up to the last whitespace inside the window.
		cut := end
		for cut > start && !isSpace(text[cut-1]) {
			cut--
		}
		if cut == start {
			cut = end
		}

		piece := strings.TrimSpace(text[start:cut])
		if piece != "" {
			chunks = append(chunks, piece)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
