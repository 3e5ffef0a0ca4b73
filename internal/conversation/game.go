package conversation

import (
	"fmt"
	"math/rand"

	"github.com/TestingGuyz/hanuman/internal/intent"
)

var gameMoves = []string{"rock", "paper", "scissors"}

// beats maps each move to the move it defeats.
var beats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

// playRound runs one rock-paper-scissors exchange. An unrecognised move asks
// for clarification without advancing the round counter. After the third
// round the match verdict is announced, the score is reset, and the session
// returns to the active menu.
func (c *Controller) playRound(st *State, text string) string {
	move := intent.DetectMove(text)
	if !move.Matched() {
		return replyMoveUnclear
	}
	userMove := move.Key
	aiMove := gameMoves[c.rng.Intn(len(gameMoves))]

	var result string
	switch {
	case userMove == aiMove:
		result = "Draw! Punar prayas karen. 🤝"
	case beats[userMove] == aiMove:
		result = "🎉 You win this round!"
		st.GameScore.User++
	default:
		result = "💪 I win! By Ram's grace!"
		st.GameScore.AI++
	}
	st.GameScore.Rounds++
	score := st.GameScore

	if score.Rounds >= 3 {
		var final string
		switch {
		case score.User > score.AI:
			final = fmt.Sprintf("🏆 Victory is yours, warrior! Final: You %d, Me %d. Jai Shri Ram!", score.User, score.AI)
		case score.AI > score.User:
			final = fmt.Sprintf("⚔️ I am victorious! Final: Me %d, You %d. Well fought, mitra!", score.AI, score.User)
		default:
			final = fmt.Sprintf("🤝 Honorable draw! Final: %d-%d. Both fought well!", score.User, score.AI)
		}
		st.Mode = ModeActive
		st.ResetGame()
		return final
	}

	return fmt.Sprintf("I chose %s. %s Score: You %d, Me %d. (Round %d/3)",
		aiMove, result, score.User, score.AI, score.Rounds)
}

// newGameRand returns the default move source. Tests inject a seeded one via
// [WithRand].
func newGameRand() *rand.Rand {
	return rand.New(rand.NewSource(rand.Int63()))
}
