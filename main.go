package main

import "github.com/tagespoet/tagespoet/cmd"

func main() {
	cmd.Execute()
}
