// Package main is the entry point for the Mutor CLI.
package main

import "mutor.dev/pkg/mutor/cmd"

func main() {
	cmd.Execute()
}
