package main

import "github.com/icco/padsynth/cmd"

func main() {
	cmd.Execute()
}
