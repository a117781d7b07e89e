package main

import (
	"fmt"
	"os"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driving/cli"
)

// version is stamped by the linker at release build time.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
