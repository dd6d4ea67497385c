package main

import "github.com/tranvictor/l2plugins/cmd"

func main() {
	cmd.Execute()
}
