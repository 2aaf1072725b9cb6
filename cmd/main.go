package main

import (
	"os"

	"github.com/okian/ensemble/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
