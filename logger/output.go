package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - generated code, errors with hints
//	1 (-v)      - + files written, watch events
//	2 (-vv)     - + timing, config loaded
//	3 (-vvv)    - + front end tree dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	OutputResults  OutputCategory = iota // Generated code, check verdicts
	OutputErrors                         // Errors with hints
	OutputProgress                       // Files written, watch rebuilds
	OutputTiming                         // Generation timing
	OutputConfig                         // Config values loaded
	OutputTreeDump                       // Parsed tree contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:  VerbosityUser,
	OutputErrors:   VerbosityUser,
	OutputProgress: VerbosityInfo,
	OutputTiming:   VerbosityDebug,
	OutputConfig:   VerbosityDebug,
	OutputTreeDump: VerbosityTrace,
}

var categoryNames = map[OutputCategory]string{
	OutputResults:  "results",
	OutputErrors:   "errors",
	OutputProgress: "progress",
	OutputTiming:   "timing",
	OutputConfig:   "config",
	OutputTreeDump: "tree-dump",
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
