package main

import "github.com/cmmoran/wsdlphpgen/cmd"

var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
