// Command a68run is the CLI driver named in SPEC_FULL.md's package table:
// run/check a named demonstration program, or inspect/force the heap
// collector, against a freshly configured interpreter instance.
package main

import "github.com/joho/godotenv"

func main() {
	// Optional .env for local developer runs (heap size, trace flags);
	// absence is not an error, mirroring termfx-morfx's main().
	_ = godotenv.Load()
	execute()
}
