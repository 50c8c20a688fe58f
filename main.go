package main

import "github.com/lavigneer/gdscript-lsp/cmd"

func main() {
	cmd.Execute()
}
