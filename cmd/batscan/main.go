// Command batscan scans a recorded fastpitch game video for the at-bat
// overlay graphic and emits YouTube chapter markers, one per batter.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
