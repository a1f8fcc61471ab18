// Command readingchat is a terminal client for the reading-assistant backend.
package main

import "github.com/diogo/readingchat/internal/commands"

func main() {
	commands.Execute()
}
