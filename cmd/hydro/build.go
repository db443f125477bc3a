package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/subcommands"
	"github.com/informatter/hydro"
)

// buildCmd implements the `build` command: the only subcommand that
// leaves pure Go and shells out to an external toolchain. hydro.Compile
// only ever produces assembly text; turning that into a runnable binary
// needs nasm to assemble it and ld to link it, neither of which this
// module vendors or could vendor.
type buildCmd struct {
	out    string
	retain bool
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "Compile, assemble, and link a Hydrogen source file" }
func (*buildCmd) Usage() string {
	return `build [-o out] [-d] <file.hy>:
  Compile a Hydrogen source file, assemble it with nasm, and link it with
  ld into a runnable ELF binary.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "out", "name of the linked binary")
	f.BoolVar(&c.retain, "d", false, "retain the intermediate .asm and .o files")
}

func (c *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	asm, err := hydro.Compile(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}

	asmPath := c.out + ".asm"
	objPath := c.out + ".o"

	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to write %s: %v\n", asmPath, err)
		return subcommands.ExitFailure
	}
	if !c.retain {
		defer os.Remove(asmPath)
	}

	if err := runToolchain("nasm", "-felf64", asmPath); err != nil {
		fmt.Fprintf(os.Stderr, "💥 nasm failed: %v\n", err)
		return subcommands.ExitFailure
	}
	if !c.retain {
		defer os.Remove(objPath)
	}

	if err := runToolchain("ld", "-o", c.out, objPath); err != nil {
		fmt.Fprintf(os.Stderr, "💥 ld failed: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// runToolchain runs name with args, forwarding its stderr so nasm/ld
// diagnostics reach the user unmodified.
func runToolchain(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
