// Package intent classifies noisy speech transcriptions against small fixed
// vocabularies of commands: wake words, interaction modes, game moves, and
// cross-mode actions.
//
// Matching is layered:
//
//  1. Exact pass: substring containment of any primary phrase within the
//     lowercased input returns the owning key with confidence 100. Entries
//     are tested in declared vocabulary order, so when two entries could both
//     match the first-declared one wins.
//
//  2. Fuzzy pass: when no primary phrase is contained, every primary and
//     fuzzy phrase is scored against the input with a partial similarity
//     ratio — the best alignment of the shorter string inside the longer one,
//     scored by Levenshtein edit-distance ratio on a 0–100 scale. The single
//     highest-scoring candidate is accepted if it reaches the category
//     threshold; equal scores keep the first candidate seen.
//
// The package holds no state and performs no I/O beyond diagnostic logging;
// all functions are safe for unrestricted concurrent use. Absence of a match
// is a normal outcome, reported as the zero [Match], never as an error.
package intent

import (
	"log/slog"
	"strings"
)

// Match is the result of classifying one input against one vocabulary.
// The zero value means nothing cleared the threshold.
type Match struct {
	// Key is the canonical identifier of the matched entry, or "" when no
	// candidate reached the category threshold.
	Key string

	// Confidence is 100 for an exact containment match on a primary phrase,
	// a partial-ratio score in [threshold, 100] for fuzzy matches, and 0 when
	// Key is "".
	Confidence int
}

// Matched reports whether a key was identified.
func (m Match) Matched() bool { return m.Key != "" }

// DetectWakeWord classifies text against the wake-word vocabulary.
func DetectWakeWord(text string) Match {
	return Detect(text, WakeWords, ThresholdWakeWord)
}

// DetectMode classifies text against the interaction-mode vocabulary.
func DetectMode(text string) Match {
	return Detect(text, Modes, ThresholdMode)
}

// DetectMove classifies text against the rock-paper-scissors vocabulary.
func DetectMove(text string) Match {
	return Detect(text, Moves, ThresholdMove)
}

// DetectAction classifies text against the help/exit action vocabulary.
func DetectAction(text string) Match {
	return Detect(text, Actions, ThresholdAction)
}

// Detect runs the two-pass classification of text against vocab.
//
// The input is normalised (lowercased, surrounding whitespace stripped) before
// any comparison. The exact pass short-circuits on the first primary phrase
// contained in the input; the fuzzy pass is a fold over every phrase of every
// entry keeping the first-seen maximum partial-ratio score, accepted only at
// or above threshold.
func Detect(text string, vocab []Entry, threshold int) Match {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Match{}
	}

	// Exact pass.
	for _, entry := range vocab {
		for _, phrase := range entry.Primary {
			if strings.Contains(normalized, phrase) {
				slog.Debug("intent: exact match",
					"key", entry.Key,
					"phrase", phrase,
				)
				return Match{Key: entry.Key, Confidence: 100}
			}
		}
	}

	// Fuzzy pass. Strictly-greater comparison keeps the first-seen maximum
	// when scores tie.
	var (
		bestKey   string
		bestScore int
	)
	for _, entry := range vocab {
		for _, phrase := range entry.Primary {
			if score := PartialRatio(phrase, normalized); score > bestScore {
				bestKey, bestScore = entry.Key, score
			}
		}
		for _, phrase := range entry.Fuzzy {
			if score := PartialRatio(phrase, normalized); score > bestScore {
				bestKey, bestScore = entry.Key, score
			}
		}
	}

	if bestScore < threshold {
		return Match{}
	}
	slog.Debug("intent: fuzzy match",
		"key", bestKey,
		"score", bestScore,
		"threshold", threshold,
	)
	return Match{Key: bestKey, Confidence: bestScore}
}
