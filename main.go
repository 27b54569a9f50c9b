package main

import (
	"context"

	"vacuum-research/cmd"
)

func main() {
	cmd.ExecuteContext(context.Background())
}
