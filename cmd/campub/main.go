package main

import (
	"os"
)

func main() {
	command := NewPublishCommand(NewPublishOptions(os.Stdout, os.Stderr))
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
