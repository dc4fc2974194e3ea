// Command studyctl runs study operations against the configured store
// without starting the HTTP server.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
