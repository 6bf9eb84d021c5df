package main

import "github.com/kasuwa-dev/kasuwa/cmd"

func main() {
	cmd.Execute()
}
