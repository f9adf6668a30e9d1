package main

import (
	"os"

	"github.com/scan-io-git/ruffrules/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
