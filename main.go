package main

import "github.com/shmlock/shmlock/cmd"

func main() {
	cmd.Execute()
}
