/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/nakachan-ing/todo-cli/cmd"

func main() {
	cmd.Execute()
}
