package classify

import (
	"fmt"
	"strings"

	"Backend-Reward-Pipeline/src/models"
)

// Result is the classification outcome plus a human-readable reason for the
// non-valid outcomes.
type Result struct {
	Outcome string
	Reason  string
}

// Classify runs the ordered decision table; the first matching rule wins.
// The duplicate lookup happens before this call and its result is passed in,
// so the same inputs always produce the same result.
//
// Rule order: completion-time floor, honeypot, duplicate email, attention
// check. The bot rules only run when configured. A missing attention answer
// is treated as passed: branching forms legitimately hide the question from
// some respondents.
func Classify(sub *models.Submission, cfg Config, isDuplicate bool) Result {
	if cfg.MinCompletionSeconds > 0 && sub.ElapsedSeconds != nil {
		if *sub.ElapsedSeconds < cfg.MinCompletionSeconds {
			return Result{
				Outcome: models.ClassificationBot,
				Reason:  fmt.Sprintf("form completed in %.1fs, floor is %.0fs", *sub.ElapsedSeconds, cfg.MinCompletionSeconds),
			}
		}
	}

	if cfg.HoneypotFieldKey != "" {
		if v, ok := AnswerText(sub.Answers, cfg.HoneypotFieldKey); ok && strings.TrimSpace(v) != "" {
			return Result{Outcome: models.ClassificationBot, Reason: "honeypot field filled"}
		}
	}

	if isDuplicate {
		return Result{
			Outcome: models.ClassificationDuplicate,
			Reason:  "email already submitted: " + sub.Email,
		}
	}

	if !cfg.attentionConfigured() {
		return Result{Outcome: models.ClassificationValid}
	}

	if answer, ok := FindAttentionAnswer(sub.Answers, cfg); ok {
		if !attentionPasses(answer, cfg) {
			return Result{
				Outcome: models.ClassificationAttentionFail,
				Reason:  fmt.Sprintf("attention answer %q does not match expected", answer),
			}
		}
	}

	return Result{Outcome: models.ClassificationValid}
}

// attentionPasses compares the normalized answer against the configured token
// with three tolerant checks: exact match, containment of the token, and
// case-insensitive containment of the configured phrase.
func attentionPasses(answer string, cfg Config) bool {
	answer = strings.TrimSpace(answer)
	if cfg.CorrectAnswer != "" {
		if answer == cfg.CorrectAnswer || strings.Contains(answer, cfg.CorrectAnswer) {
			return true
		}
	}
	if cfg.CorrectPhrase != "" && containsFold(answer, cfg.CorrectPhrase) {
		return true
	}
	return false
}
