// Package main is the entry point for the arealint CLI.
package main

import "arealint.dev/pkg/arealint/cmd"

func main() {
	cmd.Execute()
}
