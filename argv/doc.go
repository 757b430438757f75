// Package argv dispatches command-line tokens to named, typed handlers.
//
// A Parser owns a Registry of handlers. Each handler declares an ordered list
// of parameter kinds and, optionally, a variadic tail. Run walks the tokens
// left to right: a token naming a handler (with zero, one or two leading
// dashes) consumes one token per fixed parameter and, for a variadic handler,
// every following token up to the next recognized flag. Tokens are coerced to
// the declared kinds and the handler is invoked through the middleware chain.
// Tokens that name no handler go to the default handler.
//
// The first failing step stops the parse, and the usage reporter runs exactly
// once per failed parse.
//
//	p := argv.New(
//	    argv.Flag("verbose", func() bool { verbose = true; return true }),
//	    argv.Flag1("name", func(s string) bool { name = s; return true }),
//	    argv.Variadic("files", func(files ...string) bool { inputs = files; return true }),
//	).OnUsage(printUsage)
//
//	if !p.Parse(os.Args[1:]...) {
//	    os.Exit(2)
//	}
package argv
