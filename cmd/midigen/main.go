// Command midigen renders a YAML-scripted sequence of MIDI events to raw
// wire bytes, written to stdout or to a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/brson/muddy2/midigen"
)

func main() {
	var (
		scriptPath = pflag.String("script", "", "YAML sequence of messages to render.")
		out        = pflag.StringP("out", "o", "-", "Output path, or \"-\" for stdout.")
		help       = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - render a YAML MIDI event script to wire bytes\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s --script SCRIPT.yaml [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "--script is required; see --help")
		os.Exit(1)
	}

	script, err := midigen.LoadScript(*scriptPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	wire, err := midigen.Render(script)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dest := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		dest = f
	}

	if _, err := dest.Write(wire); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
