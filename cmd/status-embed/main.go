// Package main is the entry point for the status-embed CLI.
package main

import "os"

func main() {
	os.Exit(Execute())
}
