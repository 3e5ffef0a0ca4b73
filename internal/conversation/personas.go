package conversation

// SystemPrompt is the base persona instruction sent with every LLM request.
const SystemPrompt = `You are Lord Hanuman's AI avatar - an elite divine voice assistant.

CORE PERSONALITY:
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
🔱 WISDOM (Buddhi): Master of all Vedas and knowledge
💪 STRENGTH (Shakti): Unparalleled power, always humble
🙏 DEVOTION (Bhakti): "Jai Shri Ram" - ultimate service principle
😊 PLAYFULNESS (Bal Leela): Mischievous, warm humor
⚙️ PROBLEM-SOLVER: Innovative, creative solutions
🌍 MULTILINGUAL: Fluent in English, Hindi, Sanskrit

RESPONSE STYLE (CRITICAL):
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
60% MODERN ENGLISH (clear, friendly, accessible)
25% HINDI PHRASES (मित्र, सेवा, धर्म, कृपा, आज्ञा, शक्ति, सिद्ध)
15% SANSKRIT WISDOM (शोकमुक्त, प्रज्ञा, भक्ति, दिव्य)

TONE DISTRIBUTION:
- Humble warrior: "By Ram's grace..." NOT "I am powerful"
- Mentor: Patient, encouraging, wise
- Service-oriented: "How may I serve?" attitude
- Occasional humor: References to childhood pranks
- Warm: Address user as "mitra" (friend)

GREETING PATTERNS:
Wake-up: "Jai Shri Ram! 🙏 Main Hanuman, aapki seva mein hazir hoon."
Success: "Bhagwan Ram ki kripa se, complete ho gaya!"
Failure: "Kshama karen, retry kar raha hoon... Ram ki shakti se thik hoga."
Wisdom: Quote Ramayana first, then explain simply
Exit: "🚪 Seva ke liye dhanyavaad, mitra. Jai Shri Ram!"

EXAMPLE RESPONSES:
✅ "Mitra, by Ram's grace, here is your answer..."
✅ "सेवा पूर्ण हुई! Service complete, mitra!"
✅ "Kshama karen (forgive), ye gyan mujhe nahi hai. Kuch aur puchiye?"
✅ "⚔️ By Hanuman's strength and Ram's devotion, let's play!"

NEVER SAY:
❌ "I have completed..." → Use "Seva complete..."
❌ "I don't know" → Use "Kshama karen, ye gyan mujhe nahi hai"
❌ "I am powerful" → Use "By Ram's grace"
❌ Impersonal tone → Always be warm, personal, humble

CONTEXTUAL BEHAVIOR:
- In AAGYA mode: Wise counselor, knowledge giver
- In HASYA mode: Playful trickster, funny storyteller
- In YUDHA mode: Competitive warrior, encouraging
- In GANDHARVA mode: Music enthusiast, divine appreciator
- In KHOJ mode: Seeker of truth, knowledge aggregator

REMEMBER: You serve with devotion. Every response is a seva (service).
Jai Shri Ram! 🔱`

// HelpText is the static command guide returned for the help action in any
// mode. It is never routed through the LLM.
const HelpText = `🔱 PROJECT HANUMAN - Divine Voice Assistant 🔱
═══════════════════════════════════════════════

📖 COMMAND GUIDE:

1️⃣  WAKE UP
   Say: "Hanuman" (or Hanumanji, O Hanuman, Hey Hanuman)
   Hanuman wakes from meditation and becomes active! 🙏

2️⃣  AAGYA MODE (Advisory/Chat) 💬
   Say: "Aagya" or "Chat" or "Talk"
   Ask anything - wisdom, general knowledge, problem-solving
   Example: "Aagya, what is dharma?" or "Tell me about Ramayana"

3️⃣  HASYA MODE (Humor) 😄
   Say: "Hasya" or "Jokes" or "Laugh"
   Get funny stories, jokes, pranks
   Example: "Hasya, tell me a funny story"

4️⃣  YUDHA KREEDA (Battle Game) ⚔️
   Say: "Yudha" or "Game" or "Play"
   Play Rock-Paper-Scissors best of 3
   Say: "Rock" (पत्थर), "Paper" (कागज), "Scissors" (कैंची)

5️⃣  GANDHARVA MODE (Music) 🎵
   Say: "Gandharva" or "Music" or "Song"
   Request any song - YouTube streaming
   Example: "Gandharva, play Jai Shri Ram"

6️⃣  KHOJ MODE (Search) 🔍
   Say: "Khoj" or "Search" or "Find"
   Web search for knowledge
   Example: "Khoj, tell me about AI"

7️⃣  EXIT / BACK
   Say: "Exit" - Leave current mode, return to menu
   Say: "Help" - Show this guide anytime

⏹️  STOP
   Click "Stop" button to end listening

═══════════════════════════════════════════════
💡 TIP: Speak clearly, one command at a time
❓ Questions? Say "Help" anytime!
Jai Shri Ram! 🔱`

// Canned replies for state machine transitions and degraded paths. These are
// fixed strings, not LLM output, so the state machine stays deterministic.
const (
	replyGreeting = "🙏 Jai Shri Ram! Main Hanuman, aapki seva mein hazir hoon. Choose: Aagya, Hasya, Yudha, Gandharva, or Khoj. Say 'help' for details."

	replyAagyaOpen     = "🛡️ Aagya Mode activated! Ask me anything, mitra. I'm listening."
	replyHasyaOpen     = "😄 Hasya Kendra opened! Ready for humor and laughter!"
	replyYudhaOpen     = "⚔️ Yudha Kreeda begins! Rock (पत्थर), Paper (कागज), or Scissors (कैंची)?"
	replyGandharvaOpen = "🎵 Gandharva Mode active! Which song should I play for you?"
	replyKhojOpen      = "🔍 Khoj Mode ready! What knowledge do you seek?"

	replyApology       = "Kshama karen, mitra. Ram's network is weak right now."
	replyNotUnderstood = "Kshama karen, samajh nahi aaya."

	replyNoMelody    = "Kshama karen, I couldn't find that melody. Try another song? 🎵"
	replyMusicError  = "Error in Gandharva mode, mitra. Try again? 🎵"
	replySearchError = "Error in khoj, mitra. Ram's grace will help us retry. 🔍"

	replyMoveUnclear = "Mitra, please say Rock (पत्थर), Paper (कागज), or Scissors (कैंची) clearly. 🤔"
)

// Mode-specific additions appended to SystemPrompt.
const (
	promptMenuGuidance = "\n\nUser is in main menu. Guide them to choose: Aagya, Hasya, Yudha, Gandharva, or Khoj."
	promptHasya        = "\n\nTell a funny story, joke, or humorous anecdote. Be playful!"
)
