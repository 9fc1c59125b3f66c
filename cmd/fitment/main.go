package main

import (
	"os"

	"fitment-crawler/cmd/fitment/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
