package main

import "crewhub/internal/app/server"

func main() {
	server.Run()
}
