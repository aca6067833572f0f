// main package for the zipcull command-line tool.
// Package main is the entry point for the zipcull CLI.
package main

import "zipcull.dev/pkg/zipcull/cmd"

func main() {
	cmd.Execute()
}
