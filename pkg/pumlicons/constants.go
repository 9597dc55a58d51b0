package pumlicons

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid curated config or release rules
	ExitPatternMismatch  = 11 // Capture pattern did not match a source path
	ExitApprovalDenied   = 12 // User denied overwrite approval
	ExitToolFailed       = 13 // Rasterizer or sprite encoder failed
	ExitEnvironmentError = 14 // check-env found missing prerequisites
)

const (
	// FallbackColor is used when no color source resolves for an icon.
	FallbackColor = "$AWS_FG_COLOR"

	// CategoryUncategorized is assigned to sources with no curated entry.
	CategoryUncategorized = "Uncategorized"

	// CategoryGroups holds the group container icons.
	CategoryGroups = "Groups"

	// CategoryGroupIcons is the deprecated predecessor of Groups.
	CategoryGroupIcons = "GroupIcons"

	// PlaceholderExtension marks an iconless group: no image is produced.
	PlaceholderExtension = ".touch"

	// DefaultGroupLabel is used when neither the entry nor the defaults define a label.
	DefaultGroupLabel = "Generic group"

	// DefaultBorderStyle is used for unknown or missing group border styles.
	DefaultBorderStyle = "plain"

	// ResourcePrefix marks resource icons, which render at a smaller size with transparency.
	ResourcePrefix = "Res_"

	// DefaultTargetSize is the sprite/image edge length in pixels.
	DefaultTargetSize = 64

	// ResourceTargetSize is the edge length for resource icons.
	ResourceTargetSize = 48

	// DefaultDefine is the PlantUML define name used by generated documents.
	DefaultDefine = "AWSPuml"
)

// DefaultForceApprovalCountdown is how long --force waits before overwriting
// files, leaving time to cancel with Ctrl+C.
const DefaultForceApprovalCountdown = 3 * time.Second
