package main

import "github.com/dotcommander/aeoscore/cmd"

func main() {
	cmd.Execute()
}
