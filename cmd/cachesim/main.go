// Command cachesim replays memory traces against one or more cache
// hierarchy configurations and reports per-level hit/miss counts,
// AMAT, and memory traffic.
package main

import "os"

func main() {
	os.Exit(run())
}
