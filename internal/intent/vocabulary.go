package intent

// Entry is one recognisable item in a vocabulary: a canonical key plus the
// surface phrases that map to it.
//
// Primary phrases are authoritative forms — a substring containment hit on any
// of them is an exact match (confidence 100). Fuzzy phrases are known
// mistranscriptions and typo variants that only participate in the
// similarity-scored pass.
type Entry struct {
	// Key is the canonical identifier returned in a [Match] (e.g. "hasya",
	// "rock"). Keys are unique within a vocabulary.
	Key string

	// Primary is the ordered list of authoritative surface forms.
	Primary []string

	// Fuzzy is the ordered list of reduced-confidence variants.
	Fuzzy []string
}

// Per-category acceptance thresholds for the fuzzy pass. A fuzzy best
// candidate below the category threshold is discarded entirely.
const (
	ThresholdWakeWord = 75
	ThresholdMode     = 70
	ThresholdMove     = 75
	ThresholdAction   = 70
)

// WakeWords is the vocabulary that transitions a dormant session to the
// receptive state. Speech recognisers mangle "hanuman" in creative ways, so
// the fuzzy list is long.
var WakeWords = []Entry{
	{
		Key:     "hanuman",
		Primary: []string{"hanuman", "hey hanuman", "o hanuman", "jai hanuman"},
		Fuzzy: []string{
			"anuman", "humanan", "hunuman", "hanoman", "hanumanji",
			"hanaman", "hanauman", "hanunam", "ha numan", "hanman",
			"hamuman", "hanuran", "human",
		},
	},
}

// Modes is the vocabulary of the five interaction modes. Entry order matters:
// the exact pass returns the first-declared entry whose primary phrase is
// contained in the input.
var Modes = []Entry{
	{
		Key:     "aagya",
		Primary: []string{"aagya", "aagya mode", "command", "chat", "talk", "ask", "answer"},
		Fuzzy: []string{
			"agya", "agyaa", "ayga", "chatting", "talking", "asking",
			"answering", "command mode", "knowledge", "learning mode",
			"question", "advice", "information",
		},
	},
	{
		Key:     "hasya",
		Primary: []string{"hasya", "hasya mode", "joke", "jokes", "laugh", "funny", "humor", "comedy"},
		Fuzzy: []string{
			"hassa", "hassya", "joking", "laughing", "humorous", "comic",
			"ha ha", "laughter", "prank", "pranks", "joke mode", "funny mode",
			"laugh mode", "funny story", "humor time",
		},
	},
	{
		Key:     "yudha",
		Primary: []string{"yudha", "yudha mode", "game", "play", "battle", "fight"},
		Fuzzy: []string{
			"yudh", "yudhha", "gaming", "playing", "battling", "fighting",
			"game mode", "play mode", "battle mode", "rps", "dice game",
			"card game", "challenge me",
		},
	},
	{
		Key:     "gandharva",
		Primary: []string{"gandharva", "gandharva mode", "music", "song", "play song", "singing", "songs"},
		Fuzzy: []string{
			"gandharv", "music mode", "song mode", "musical", "melody",
			"tune", "audio", "sound", "entertainment", "play music",
			"music time", "playlist", "singer mode", "musician",
		},
	},
	{
		Key:     "khoj",
		Primary: []string{"khoj", "khoj mode", "search", "find", "web", "information", "research", "google"},
		Fuzzy: []string{
			"search mode", "finding", "research mode", "searching",
			"lookup", "inquire", "ask online", "search online",
			"web search", "find online", "internet search", "information mode",
			"knowledge search", "google it",
		},
	},
}

// Moves is the rock-paper-scissors vocabulary with bilingual synonym sets.
// Declared order (rock, paper, scissors) doubles as the containment check
// order during a game round.
var Moves = []Entry{
	{
		Key:     "rock",
		Primary: []string{"rock", "patthar", "pathar", "stone", "boulder"},
		Fuzzy:   []string{"rok", "roack", "roc", "rocks", "stonee"},
	},
	{
		Key:     "paper",
		Primary: []string{"paper", "kagaz", "kagaj", "cloth"},
		Fuzzy:   []string{"papper", "papar", "papeer", "paper sheet"},
	},
	{
		Key:     "scissors",
		Primary: []string{"scissors", "kenchi", "kainchi", "cuts"},
		Fuzzy:   []string{"scissor", "scizzors", "cutting", "cutting tool"},
	},
}

// Actions is the vocabulary of cross-mode commands. These are checked before
// any mode-specific handling on every turn, so "help" and "exit" work
// everywhere.
var Actions = []Entry{
	{
		Key:     "help",
		Primary: []string{"help", "guide", "help me", "how to", "instructions"},
		Fuzzy: []string{
			"help mode", "helping", "guideline", "guide me", "instruction",
			"tutorial", "how do i", "show me", "tell me how",
		},
	},
	{
		Key:     "exit",
		Primary: []string{"exit", "quit", "leave", "back", "go back", "stop"},
		Fuzzy: []string{
			"exits", "exiting", "quit mode", "leaving", "go to main",
			"main menu", "home", "cancel", "close", "end", "return",
		},
	},
}
