package main

import "github.com/tessro/sonoctl/internal/cli"

func main() {
	cli.Execute()
}
