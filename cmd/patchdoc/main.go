// Command patchdoc is a thin demo CLI over the docstore package. It is not
// part of the core: every subcommand just decodes its input, calls an
// exported docstore function, and formats the result.
package main

import "github.com/patchdoc/patchdoc/commands"

func main() {
	commands.Execute()
}
