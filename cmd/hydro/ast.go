package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/informatter/hydro/arena"
	hydroast "github.com/informatter/hydro/ast"
	"github.com/informatter/hydro/lexer"
	"github.com/informatter/hydro/parser"
)

// astCmd implements the `ast` command: a debugging aid that prints the
// parsed syntax tree as JSON. Unlike `build`, it uses
// ParseProgramCollectingErrors so a single typo doesn't hide the rest of
// the tree from whoever is staring at the output.
type astCmd struct {
	out string
}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "Print the parsed syntax tree for a Hydrogen source file" }
func (*astCmd) Usage() string {
	return `ast [-o out.json] <file.hy>:
  Parse a Hydrogen source file and print its syntax tree as JSON, or
  write it to -o if given.
`
}

func (c *astCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "write the AST as JSON to this path instead of stdout")
}

func (c *astCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	toks, err := lexer.New(string(data)).Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}

	a := arena.New(arena.DefaultCapacity)
	prog, errs := parser.ParseProgramCollectingErrors(toks, a)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	if c.out != "" {
		if err := hydroast.WriteJSONToFile(prog, c.out); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Failed to write %s: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
	} else {
		out, err := hydroast.PrintJSON(prog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 Failed to print AST: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(out)
	}

	if len(errs) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
