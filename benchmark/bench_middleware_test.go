//nolint:testpackage // using package name 'benchmark' to reach internal packages
package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-argv/argv"
	mw "github.com/dzonerzy/go-argv/middleware"
)

// Category: middleware

func okInvoke(*mw.Invocation) (bool, error) { return true, nil }

func BenchmarkMiddlewareChain(b *testing.B) {
	parser := argv.New(
		argv.Flag("v", func() bool { return true }),
		argv.Flag1("format", func(string) bool { return true }),
	).Use(
		mw.SilentLogger(),
		mw.Validate(mw.OneOf("format", "json", "text")),
	)

	args := []string{"-v", "--format", "json"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !parser.Parse(args...) {
			b.Fatal("parse failed")
		}
	}
}

func BenchmarkMiddleware_Individual(b *testing.B) {
	inv := &mw.Invocation{Flag: "format", Token: "--format", Args: []string{"json"}, Values: []any{"json"}}

	cases := []struct {
		name string
		mw   mw.Middleware
	}{
		{"Noop", mw.NoopValidator()},
		{"Recovery", mw.Recovery()},
		{"SilentLogger", mw.SilentLogger()},
		{"Validate", mw.Validate(mw.OneOf("format", "json", "text"), mw.NonEmpty("format"))},
	}
	for _, tc := range cases {
		fn := tc.mw(okInvoke)
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = fn(inv)
			}
		})
	}
}
