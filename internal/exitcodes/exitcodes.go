package exitcodes

// Exit codes for dirsweep
// These codes form the operational contract with scripts and CI wrappers
const (
	Success           = 0 // Successful run, including no matches and user cancellation
	InvalidInvocation = 1 // Bad flags, missing target names, or unusable root path
	PartialFailure    = 2 // One or more removals failed and --strict was set
)
