// Command streamlink attaches Spotify and Apple Music recording links to
// historical NM Janitsjar and NM Brass competition performances.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/korpsdata/streamlink/core"
)

func main() {
	// A local .env may carry the Spotify credentials; absence is fine.
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		core.Errorf(err)
		os.Exit(1)
	}
}
