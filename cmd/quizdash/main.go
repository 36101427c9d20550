package main

import (
	"github.com/quizdash/quizdash-go/internal/cli"
)

func main() {
	cli.Execute()
}
