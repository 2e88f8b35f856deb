package main

import "github.com/theirongolddev/reimburse/cmd"

func main() {
	cmd.Execute()
}
