// Package main is the entry point for the jdkmig CLI tool.
package main

import (
	"github.com/jdkbench/jdkmig/internal/cmd"
)

func main() {
	cmd.Execute()
}
