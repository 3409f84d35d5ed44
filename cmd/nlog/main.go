package main

import "github.com/philipp01105/nlog/v2/cmd/nlog/cmd"

func main() {
	cmd.Execute()
}
