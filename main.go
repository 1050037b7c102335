/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/bp4sp4/NMS-System-sub000/cmd"

func main() {
	cmd.Execute()
}
