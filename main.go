package main

import "github.com/healthplus/identity/cmd/server"

func main() {
	server.NewServer().Run()
}
