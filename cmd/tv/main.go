package main

import "taskventure/cmd/tv/root"

func main() {
	root.Execute()
}
