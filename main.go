package main

import "github.com/gagarinchain/offences/cmd"

func main() {
	cmd.Execute()
}
