package main

import "student-housing/cmd"

func main() {
	cmd.Execute()
}
