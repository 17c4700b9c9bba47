package main

import (
	"context"
	"os"

	"github.com/utkarsh5026/projsim/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
