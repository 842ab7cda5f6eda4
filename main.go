package main

import (
	"os"

	"github.com/songsbyarchit/AmritArchit-v4/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
