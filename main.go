package main

import "github.com/hoanm/devrig/cmd"

func main() {
	cmd.Execute()
}
