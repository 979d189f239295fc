package main

import (
	"log"
	"os"

	"github.com/viant/mcp-lambda/bridge"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
