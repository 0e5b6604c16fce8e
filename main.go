package main

import "github.com/KaramelBytes/variant-insights/cmd"

func main() {
	cmd.Execute()
}
