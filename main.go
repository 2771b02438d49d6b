package main

import (
	"os"

	"github.com/mouse-blink/hosttest/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
