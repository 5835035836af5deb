// Command agencyctl queries the agency directory from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(connect).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
