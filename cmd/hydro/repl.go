package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/informatter/hydro"
)

// replCmd implements the `repl` command: an interactive session where
// each line is treated as a standalone Hydrogen program and compiled on
// the spot. Unlike the teacher's bufio.Scanner loop, this one gets
// history, line editing, and Ctrl-C/Ctrl-D handling from readline rather
// than reimplementing them by hand.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Hydrogen session" }
func (*replCmd) Usage() string {
	return `repl:
  Compile one Hydrogen statement at a time, printing the generated
  assembly for each.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	width := termWidth(80)
	banner := strings.Repeat("=", width)
	fmt.Println(banner)
	fmt.Println("Hydrogen REPL — one statement per line, e.g. exit(2 + 3 * 4);")
	fmt.Println("Ctrl-D to quit.")
	fmt.Println(banner)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "hydro> ",
		HistoryFile: "",
	})
	if err != nil {
		fmt.Println("💥 Failed to start REPL:", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Println("💥", err)
			return subcommands.ExitFailure
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		asm, err := hydro.Compile(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Print(asm)
	}
}
