package main

import "condactl/internal/cli"

func main() {
	cli.Execute()
}
