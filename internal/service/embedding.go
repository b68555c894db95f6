package service

import (
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the width of the saved_recipes.embedding column
const EmbeddingDimensions = 64

// GenerateEmbedding hashes the lowercased word tokens of text into a fixed number of buckets and
// scales the result to unit length, so texts sharing words sit close under L2 distance.
// Text without any word token yields the zero vector.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, EmbeddingDimensions)
	for _, token := range tokenize(text) {
		vec[xxhash.Sum64String(token)%EmbeddingDimensions]++
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum > 0 {
		norm := float32(math.Sqrt(sum))
		for i := range vec {
			vec[i] /= norm
		}
	}
	return pgvector.NewVector(vec)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
