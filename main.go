// SPDX-License-Identifier: MPL-2.0

// Command fwtool imports software into FileWave through the FileWave Admin
// command-line tool.
package main

import cmd "github.com/filewave/fwtool/cmd/fwtool"

func main() {
	cmd.Execute()
}
