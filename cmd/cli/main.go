// fastfile - Line Cursor for Text Files
//
// fastfile reads text files one line at a time, keeping a window of recent
// lines that can be peeked at, replayed and joined without re-reading the file.
package main

import (
	"os"

	"github.com/ccollicutt/fastfile/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
