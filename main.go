package main

import "github.com/peekknuf/wineqa/cmd"

func main() {
	cmd.Execute()
}
