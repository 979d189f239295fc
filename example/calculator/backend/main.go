package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcp-lambda/example/calculator"
)

type options struct {
	Port int `short:"p" long:"port" description:"listen port" default:"8080"`
}

func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}
	addr := fmt.Sprintf(":%d", opts.Port)
	log.Printf("calculator backend listening on %v", addr)
	log.Fatal(http.ListenAndServe(addr, calculator.New()))
}
