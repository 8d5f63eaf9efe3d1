package config

import "errors"

// Sentinel error kinds for this package; callers match with errors.Is.
var (
	ErrInvalidRuleset = errors.New("invalid ruleset")
	ErrLoadRuleset    = errors.New("load ruleset failed")
)
