package main

import "github.com/robalobadob/wordsearch/cmd"

func main() {
	cmd.Execute()
}
