package main

import (
	"os"

	"github.com/jakoblorz/go-minishell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
