package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
)

// Leaderboard display constants
const (
	// MaxNameLength is the widest a username renders in monospace tables
	MaxNameLength = 16
)

// OnboardingText is posted once when the bot joins a guild and replayed
// by /help
const OnboardingText = "**Thanks for adding RollF!**\n\n" +
	"RollF can post **one daily roll automatically**, but needs a channel to be configured.\n\n" +
	"To enable daily rolls:\n" +
	"• Run `/setchannel` in the channel where you want RollF to post\n" +
	"• Make sure RollF is allowed to send messages in that channel\n\n" +
	"Slash commands like `/roll`, `/leaderboards` and `/stats` work immediately.\n\n" +
	"You can see this message again anytime with `/help`."
