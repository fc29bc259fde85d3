package main

import "github.com/glowandgrind/site-api/cmd"

func main() {
	cmd.Execute()
}
