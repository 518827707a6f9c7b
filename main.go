package main

import "github.com/avrillon/steamworth/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
