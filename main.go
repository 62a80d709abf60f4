package main

import (
	"fmt"
	"os"
)

var version = "(devel)"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case runMode:
		checkf(doRun(cli.Run), "run failed")
	case romInfosMode:
		romInfosMain(cli.RomInfos)
	case versionMode:
		fmt.Println("mdhost", version)
	}
}
