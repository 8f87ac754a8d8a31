package main

import (
	"github.com/lamnguyen-ct/storefront/cmd"
)

func main() {
	cmd.Execute()
}
