package main

import "github.com/nextlevelbuilder/cloudeng/cmd"

func main() {
	cmd.Execute()
}
