package main

import "github.com/llehouerou/scrobblr/internal/cli"

func main() {
	cli.Execute()
}
