package tone

import (
	"regexp"
	"strings"
)

// Two separate denylists with different escalation consequences: profanity
// raises toxicity, a protected-class slur forces the boundary policy. They
// must never be merged.
var (
	profanityDetect = regexp.MustCompile(`(?i)\b(fuck\w*|shit\w*|bitch\w*|asshole\w*|damn\w*)\b`)

	// Kept deliberately opaque: placeholder stems stand in for the real
	// deployment list, which is provisioned out of band.
	protectedSlurDetect = regexp.MustCompile(`(?i)\b(slur_a\w*|slur_b\w*|slur_c\w*)\b`)
)

var (
	secondPerson = regexp.MustCompile(`(?i)\b(you|your|you're|youre|ur|u)\b`)
	firstPerson  = regexp.MustCompile(`(?i)\b(i|i'm|im|me|my)\b`)
)

// HasProfanity reports whether the message trips the profanity denylist.
func HasProfanity(message string) bool {
	return profanityDetect.MatchString(message)
}

// HasProtectedSlur reports whether the message trips the protected-slur
// denylist.
func HasProtectedSlur(message string) bool {
	return protectedSlurDetect.MatchString(message)
}

// DetectInsultTarget is a pronoun-pattern heuristic, not a classifier:
// profanity aimed with second-person pronouns reads as an insult at the
// bot/other party, with first-person pronouns as self-deprecation.
func DetectInsultTarget(message string) string {
	if HasProtectedSlur(message) {
		return TargetProtected
	}
	if !HasProfanity(message) {
		return TargetNone
	}

	lower := strings.ToLower(message)
	switch {
	case secondPerson.MatchString(lower):
		return TargetOther
	case firstPerson.MatchString(lower):
		return TargetSelf
	default:
		return TargetNone
	}
}

// ScoreToxicity is a coarse density score: share of words that are
// denylisted, scaled so two hits in a short message reads high.
func ScoreToxicity(message string) float64 {
	words := strings.Fields(message)
	if len(words) == 0 {
		return 0
	}
	hits := len(profanityDetect.FindAllString(message, -1))
	score := 3 * float64(hits) / float64(len(words))
	return clamp(score)
}

var smalltalkCues = []string{"lol", "lmao", "haha", "hey", "yo", "sup", "wyd", "bruh"}

// ScoreSmalltalk estimates how conversational (vs. informational) the
// message is from casual cue words.
func ScoreSmalltalk(message string) float64 {
	lower := strings.ToLower(message)
	hits := 0
	for _, cue := range smalltalkCues {
		if strings.Contains(lower, cue) {
			hits++
		}
	}
	return clamp(float64(hits) / 2)
}
