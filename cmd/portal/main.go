package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"idms/internal/app/portalcli"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "err", err)
	}
	if err := portalcli.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
