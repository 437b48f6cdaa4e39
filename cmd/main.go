package main

import (
	cmd "github.com/kerbaras/comicdto/cmd/comicdto"
)

func main() {
	cmd.Execute()
}
