// Fleetview - unified server group views across cloud providers.
package main

func main() {
	Execute()
}
