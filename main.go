package main

import "rb3vid/cmd"

func main() {
	cmd.Execute()
}
