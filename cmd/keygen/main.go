// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/carterperez-dev/invoicery/internal/auth"
)

// Generates the ES256 key pair the API signs tokens with. Run once per
// environment and point jwt.private_key_path at the output.
func main() {
	privatePath := flag.String(
		"private",
		"keys/jwt-private.pem",
		"path to write the private key",
	)
	publicPath := flag.String(
		"public",
		"keys/jwt-public.pem",
		"path to write the public key",
	)
	flag.Parse()

	if err := auth.GenerateKeyPair(*privatePath, *publicPath); err != nil {
		slog.Error("key generation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("key pair written",
		"private", *privatePath,
		"public", *publicPath,
	)
}
