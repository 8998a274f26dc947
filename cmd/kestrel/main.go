// Command kestrel is the engine's executable: a UCI engine by default, or
// an interactive terminal opponent with -cli.
package main

import (
	"flag"
	"fmt"
	"os"

	"kestrel/internal/shell"
)

func main() {
	cli := flag.Bool("cli", false, "play interactively from the terminal instead of speaking UCI")
	ttMB := flag.Int("hash", 64, "transposition table size in megabytes")
	book := flag.String("book", "", "path to a Polyglot opening book (.bin); empty disables the book")
	flag.Parse()

	ttBytes := *ttMB * 1024 * 1024
	if ttBytes <= 0 {
		fmt.Fprintln(os.Stderr, "kestrel: -hash must be positive")
		os.Exit(1)
	}

	if *cli {
		shell.CLI(os.Stdin, os.Stdout, ttBytes)
		return
	}
	shell.RunUCI(ttBytes, *book)
}
