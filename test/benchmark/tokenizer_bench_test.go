package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/searchkit/phraseproc/internal/tokenizer"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog",
	"medium": `Phrase query processors evaluate ordered term sequences against a
        positional inverted index. Each document contributes its token positions
        so that consecutive query terms can be verified to appear at adjacent
        offsets. The nextword variant keys the index by adjacent term pairs
        instead, trading index size for fewer lookups per query.`,
	"long": strings.Repeat(`Information retrieval systems combine tokenization,
        normalization, and positional indexing to answer phrase queries. The
        standard approach intersects per-term position lists while the nextword
        approach walks chained bigram postings; both must produce identical
        match sets for the same collection and query. `, 20),
}

func BenchmarkTokenize(b *testing.B) {
	var tok tokenizer.Tokenizer
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := tok.Tokenize(text)
				_ = tokens
			}
		})
	}
}

func BenchmarkTokenizeStemmed(b *testing.B) {
	tok := tokenizer.Tokenizer{Stem: true}
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		tokens := tok.Tokenize(text)
		_ = tokens
	}
}

func BenchmarkTokenizeParallel(b *testing.B) {
	var tok tokenizer.Tokenizer
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			tokens := tok.Tokenize(text)
			_ = tokens
		}
	})
}

func BenchmarkTokenizeVaryingSize(b *testing.B) {
	var tok tokenizer.Tokenizer
	sizes := []int{10, 100, 500, 1000, 5000}
	baseWord := "phrase query processing with positional indexes "
	for _, size := range sizes {
		text := strings.Repeat(baseWord, size/len(baseWord)+1)[:size]
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := tok.Tokenize(text)
				_ = tokens
			}
		})
	}
}
