// Command roadmap tracks progress through a branching roadmap of checkpoints.
package main

import "github.com/mesh-intelligence/roadmap/internal/cli"

func main() {
	cli.Execute()
}
