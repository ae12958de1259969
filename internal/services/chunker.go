package services

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

// TextChunker splits long job postings into embedding-sized pieces.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// chunkBuilder accumulates pieces and carries an overlap tail into each new chunk.
type chunkBuilder struct {
	max, overlap int
	chunks       []string
	cur          strings.Builder
	curRunes     int
	carried      int
}

func (b *chunkBuilder) add(piece, sep string) {
	n := utf8.RuneCountInString(piece)
	s := utf8.RuneCountInString(sep)
	if b.curRunes > b.carried && b.curRunes+s+n > b.max {
		b.flush()
	}
	if b.curRunes > 0 && b.curRunes+s+n > b.max {
		// the carried tail alone would overflow
		b.reset()
	}
	if b.curRunes > 0 {
		b.cur.WriteString(sep)
		b.curRunes += s
	}
	b.cur.WriteString(piece)
	b.curRunes += n
}

func (b *chunkBuilder) flush() {
	prev := b.cur.String()
	b.chunks = append(b.chunks, prev)
	b.reset()
	if tail := strings.TrimSpace(lastRunes(prev, b.overlap)); tail != "" {
		b.cur.WriteString(tail)
		b.curRunes = utf8.RuneCountInString(tail)
		b.carried = b.curRunes
	}
}

func (b *chunkBuilder) reset() {
	b.cur.Reset()
	b.curRunes = 0
	b.carried = 0
}

func (b *chunkBuilder) done() []string {
	if b.curRunes > b.carried {
		b.chunks = append(b.chunks, b.cur.String())
	}
	return b.chunks
}

// ChunkText packs paragraphs into chunks of at most maxChunkSize runes, falling
// back to sentences for paragraphs that do not fit on their own. Consecutive
// chunks share overlap runes.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	b := &chunkBuilder{max: maxChunkSize, overlap: overlap}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxChunkSize {
			b.add(para, "\n\n")
			continue
		}
		for _, sentence := range splitIntoSentences(para) {
			b.add(sentence, " ")
		}
	}
	return b.done()
}

// splitIntoSentences keeps the terminator with each sentence.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
