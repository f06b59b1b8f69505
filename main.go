package main

import "github.com/ValentinKolb/sstate/cmd"

func main() {
	cmd.Execute()
}
