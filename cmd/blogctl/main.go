// Command blogctl is the administration tool for the blog: schema, groups,
// moderation, cache and demo data.
package main

import "yatube/cmd/blogctl/commands"

func main() {
	commands.Execute()
}
