package main

import "github.com/theirongolddev/amort/cmd"

func main() {
	cmd.Execute()
}
