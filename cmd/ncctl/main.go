package main

import "github.com/coursecloud/service/cmd/ncctl/cmd"

func main() {
	cmd.Execute()
}
