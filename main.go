package main

import "github.com/docuai/docuai/cmd"

func main() {
	cmd.Execute()
}
