package main

import (
	"os"

	"Rotar/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
