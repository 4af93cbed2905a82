package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/rgbconv/internal/lsp"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	verbose := pflag.CountP("verbose", "v", "log verbosity (repeat for more)")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println("rgbconv-lsp", version)
		return
	}

	s := lsp.NewServer(version, *verbose)
	if err := s.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
