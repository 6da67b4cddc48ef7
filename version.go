package planner

import _ "embed"

// Version is the release version of the planner.
//
//go:embed VERSION
var Version string
