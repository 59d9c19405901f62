package main

import "github.com/yumyai/protprofile/cmd"

func main() {
	cmd.Execute()
}
