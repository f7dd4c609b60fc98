package main

import (
	"github.com/udesa-vision/i308-utils/internal/cli"
)

func main() {
	cli.Execute()
}
