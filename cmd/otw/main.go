package main

import "github.com/OpenTraceLab/OpenTraceWinding/cmd/otw/cmd"

func main() {
	cmd.Execute()
}
