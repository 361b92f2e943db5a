package main

import "order-reconciler/cmd"

func main() {
	cmd.Execute()
}
