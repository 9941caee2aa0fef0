package main

import (
	"recbox/cmd"
)

func main() {
	cmd.Execute()
}
