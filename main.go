// Package main is the entry point for the cricmetrics CLI tool, which
// ingests ball-by-ball T20 match data and computes per-player performance
// metrics, playing-style classifications and form trends.
package main

import "cricmetrics/cmd"

func main() {
	cmd.Execute()
}
