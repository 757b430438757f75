//nolint:testpackage // using package name 'benchmark' to reach internal packages
package benchmark

import (
	"testing"
	"time"

	"github.com/dzonerzy/go-argv/argv"
)

// Category: parser

type simpleTarget struct {
	port    int
	verbose bool
}

func buildSimpleParser(t *simpleTarget) *argv.Parser {
	return argv.New(
		argv.Flag1("port", func(p int) bool { t.port = p; return true }),
		argv.Flag("verbose", func() bool { t.verbose = true; return true }),
	)
}

func BenchmarkParserSimple(b *testing.B) {
	var target simpleTarget
	parser := buildSimpleParser(&target)
	args := []string{"--port", "8080", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !parser.Parse(args...) {
			b.Fatal("parse failed")
		}
	}
	if !target.verbose || target.port != 8080 {
		b.Fatalf("unexpected target %+v", target)
	}
}

func BenchmarkParserVariadic(b *testing.B) {
	var files []string
	parser := argv.New(
		argv.Variadic("files", func(fs ...string) bool { files = fs; return true }),
		argv.Flag("force", func() bool { return true }),
	)
	args := []string{"--files", "a.go", "b.go", "c.go", "d.go", "--force"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !parser.Parse(args...) {
			b.Fatal("parse failed")
		}
	}
	if len(files) != 4 {
		b.Fatalf("want 4 files, got %d", len(files))
	}
}

func BenchmarkParserTyped(b *testing.B) {
	parser := argv.New(
		argv.Flag3("server", func(string, int, bool) bool { return true }),
		argv.Flag1("timeout", func(time.Duration) bool { return true }),
		argv.Variadic("weights", func(...float64) bool { return true }),
	)
	args := []string{"server", "localhost", "9000", "true", "--timeout", "5s", "--weights", "0.1", "0.2", "0.7"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !parser.Parse(args...) {
			b.Fatal("parse failed")
		}
	}
}

func BenchmarkParserPositionals(b *testing.B) {
	positionals := make([]string, 0, 8)
	parser := argv.New(
		argv.Flag("verbose", func() bool { return true }),
	).OnDefault(func(q *argv.Queue) bool {
		tok, _ := q.Pop()
		positionals = append(positionals, tok)
		return true
	})
	args := []string{"in.txt", "--verbose", "out.txt"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		positionals = positionals[:0]
		if !parser.Parse(args...) {
			b.Fatal("parse failed")
		}
	}
}

func BenchmarkParserUnknownFlag(b *testing.B) {
	var target simpleTarget
	parser := buildSimpleParser(&target)
	args := []string{"--verbsoe"}

	b.Run("WithSuggestions", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = parser.Run(args)
		}
	})

	b.Run("NoSuggestions", func(b *testing.B) {
		quiet := buildSimpleParser(&target).Suggestions(0)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = quiet.Run(args)
		}
	})
}

func BenchmarkCoerce(b *testing.B) {
	cases := []struct {
		name  string
		token string
		kind  argv.Kind
	}{
		{"String", "hello", argv.KindString},
		{"Int", "8080", argv.KindInt},
		{"Double", "3.1415", argv.KindDouble},
		{"Bool", "true", argv.KindBool},
		{"Duration", "1m30s", argv.KindDuration},
		{"UUID", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", argv.KindUUID},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := argv.Coerce(tc.token, tc.kind); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParserParallel(b *testing.B) {
	parser := argv.New(
		argv.Flag1("port", func(int) bool { return true }),
		argv.Variadic("tags", func(...string) bool { return true }),
	)
	args := []string{"--port", "8080", "--tags", "a", "b"}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := parser.Run(args); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
