// Command bgone removes a solid background color from an image file.
package main

import (
	"os"

	"github.com/Fepozopo/bgone/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
