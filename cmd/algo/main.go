package main

import (
	"os"

	"github.com/hashicorp-forge/algorithmia/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
