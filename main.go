// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package main

import "github.com/geoffholden/sensorlog/cmd"

func main() {
	cmd.Execute()
}
