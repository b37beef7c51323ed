package main

import "fmt"

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("seabuild", version)
	return nil
}
