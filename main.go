package main

import "github.com/jsphweid/lilyscore/cmd"

func main() {
	cmd.Execute()
}
