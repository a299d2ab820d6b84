/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/mohamadacma/capflow-demo/cmd"

func main() {
	cmd.Execute()
}
