// main package for dirmod command-line tool
// Package main is the entry point for the dirmod CLI.
package main

import "dirmod.dev/pkg/dirmod/cmd"

func main() {
	cmd.Execute()
}
