package main

import (
	"os"

	"github.com/wonny/creditlens/cmd/credit/commands"
)

// main is the entry point for the credit CLI
// ⭐ Single CLI entry point: go run ./cmd/credit [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
