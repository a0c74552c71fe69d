package main

import "powderteam/oaiprofile/cmd"

func main() {
	cmd.Execute()
}
