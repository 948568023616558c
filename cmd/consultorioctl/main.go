// Command consultorioctl drives the consultorio API from a terminal: the guest
// calendar, reservations, the weekly availability editor and payments.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+describe(err)))
		os.Exit(1)
	}
}
