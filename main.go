package main

import "github.com/KaramelBytes/datascribe/cmd"

func main() {
	cmd.Execute()
}
