package tools

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/praxislabs/praxis/pkg/tool"
)

// NewStatistics returns the numeric statistics tool.
func NewStatistics() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "calculate_statistics",
		Description: "Computes statistics over a list of numbers: count, sum, mean, median, min, max, and standard deviation.",
		Category:    tool.CategoryDataAnalysis,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"numbers": {
				Type:        "array",
				Description: "The numbers to analyze",
			},
		}, "numbers"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		numbers, ok := floatsArg(args, "numbers")
		if !ok {
			return tool.Fail("'numbers' must be a list of numbers")
		}
		if len(numbers) == 0 {
			return tool.Fail("'numbers' must not be empty")
		}

		sorted := append([]float64(nil), numbers...)
		sort.Float64s(sorted)

		var sum float64
		for _, n := range numbers {
			sum += n
		}
		mean := sum / float64(len(numbers))

		var variance float64
		for _, n := range numbers {
			variance += (n - mean) * (n - mean)
		}
		variance /= float64(len(numbers))

		var median float64
		mid := len(sorted) / 2
		if len(sorted)%2 == 0 {
			median = (sorted[mid-1] + sorted[mid]) / 2
		} else {
			median = sorted[mid]
		}

		return tool.Ok(map[string]any{
			"count":  len(numbers),
			"sum":    sum,
			"mean":   mean,
			"median": median,
			"min":    sorted[0],
			"max":    sorted[len(sorted)-1],
			"stddev": math.Sqrt(variance),
		})
	})
}

// NewTextAnalyzer returns the text statistics tool.
func NewTextAnalyzer() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "analyze_text",
		Description: "Analyzes a piece of text: character, word, line, and sentence counts plus average word length.",
		Category:    tool.CategoryDataAnalysis,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"text": {
				Type:        "string",
				Description: "The text to analyze",
			},
		}, "text"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		text := strArg(args, "text", "")
		if strings.TrimSpace(text) == "" {
			return tool.Fail("'text' must not be empty")
		}

		words := strings.Fields(text)
		lines := strings.Count(text, "\n") + 1

		var sentences int
		for _, r := range text {
			if r == '.' || r == '!' || r == '?' {
				sentences++
			}
		}
		if sentences == 0 {
			sentences = 1
		}

		var letters, wordLen int
		for _, r := range text {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		for _, w := range words {
			wordLen += len([]rune(w))
		}
		avgWordLen := 0.0
		if len(words) > 0 {
			avgWordLen = float64(wordLen) / float64(len(words))
		}

		return tool.Ok(map[string]any{
			"characters":      len([]rune(text)),
			"letters":         letters,
			"words":           len(words),
			"lines":           lines,
			"sentences":       sentences,
			"avg_word_length": avgWordLen,
		})
	})
}
