// Command sysbrowse browses the live subsystems of a running simulation.
package main

import "github.com/papapumpkin/sysbrowse/cmd"

func main() {
	cmd.Execute()
}
