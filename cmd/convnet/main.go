// Package main provides the convnet CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0"

const usage = `convnet - convolutional network trainer

Usage:
  convnet <command> [flags]

Commands:
  describe   Print the configured architecture and weight shapes
  train      Train a network on labeled samples and save it
  test       Report the accuracy of a saved network
  query      Classify sample rows read from -line or stdin
  search     Search learning rates and epoch counts
  version    Show version

Run "convnet <command> -h" for command flags.
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("convnet: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "convnet %s\n", version)
		return nil
	case "describe":
		return describe(rest, stdout)
	case "train":
		return train(rest, stdout)
	case "test":
		return test(rest, stdout)
	case "query":
		return query(rest, stdin, stdout)
	case "search":
		return search(rest, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q (run \"convnet help\")", cmd)
}
