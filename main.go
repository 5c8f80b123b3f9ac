package main

import "github.com/isgasho/mesabox/cmd"

func main() {
	cmd.Execute()
}
