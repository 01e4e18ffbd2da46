package main

import (
	"fmt"
	"os"
)

func tryHelpCommand() bool {
	if len(os.Args) < 2 {
		return false
	}
	switch os.Args[1] {
	case "help", "-help", "--help":
	default:
		return false
	}
	fmt.Println(usage)
	return true
}
