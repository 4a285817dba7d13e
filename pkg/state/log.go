package state

// LogKind discriminates narrative log entries. The log is append-only;
// truncation for prompt windows happens in the prompt builder, never here.
type LogKind string

const (
	LogSystem    LogKind = "system"    // out-of-band messages (level-ups, errors)
	LogPlayer    LogKind = "player"    // the player's own command
	LogNarration LogKind = "narration" // game master prose
	LogCombat    LogKind = "combat"    // combat transition banner
)

// LogEntry is one line of the narrative log.
type LogEntry struct {
	Kind    LogKind `json:"kind"`
	Content string  `json:"content"`
}

func SystemEntry(content string) LogEntry    { return LogEntry{Kind: LogSystem, Content: content} }
func PlayerEntry(content string) LogEntry    { return LogEntry{Kind: LogPlayer, Content: content} }
func NarrationEntry(content string) LogEntry { return LogEntry{Kind: LogNarration, Content: content} }
func CombatEntry(content string) LogEntry    { return LogEntry{Kind: LogCombat, Content: content} }

// History roles for the conversation transcript sent back to the narrator.
const (
	HistoryRoleGM     = "GM"
	HistoryRolePlayer = "player"
)

// HistoryEntry is one turn half in the player/GM transcript.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
