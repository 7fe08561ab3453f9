package main

import (
	"fmt"
	"os"

	"github.com/andy/countdown/internal/cli"
)

func main() {
	err := cli.Execute()
	if cerr := cli.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
