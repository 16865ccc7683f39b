//go:build !testcoverage

package main

import "os"

func main() {
	streams := DefaultStreams()
	if err := run(os.Args, streams); err != nil {
		fatal(streams.Stderr, err)
	}
}
