package main

import "github.com/copybench/copybench/cmd"

func main() {
	cmd.Execute()
}
