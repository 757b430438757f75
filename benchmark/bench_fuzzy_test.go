//nolint:testpackage // using package name 'benchmark' to reach internal packages
package benchmark

import (
	"testing"

	fuzzy "github.com/dzonerzy/go-argv/internal/fuzzy"
)

// Category: fuzzy

var benchFlagNames = []string{
	"help", "version", "verbose", "config", "output", "input",
	"force", "debug", "port", "host", "timeout", "retry",
}

func BenchmarkMatcher_FindBest(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.FindBest("hep", benchFlagNames)
	}
}

func BenchmarkMatcher_FindMatches(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.FindMatches("ver", benchFlagNames)
	}
}

func BenchmarkConvenienceFunctions(b *testing.B) {
	b.Run("FindBestFlag", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindBestFlag("verbsoe", benchFlagNames, 2)
		}
	})
	b.Run("FindSuggestions", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindSuggestions("ver", benchFlagNames, 2, 3)
		}
	})
}
