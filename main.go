package main

import "github.com/jmehdipour/rc-admin/cmd"

func main() {
	cmd.Execute()
}
