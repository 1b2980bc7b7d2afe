package main

import (
	"github.com/linkboard/linkboard/cmd"
)

func main() {
	cmd.Execute()
}
