package classify

import (
	"strings"

	"Backend-Reward-Pipeline/src/models"
)

// ExtractEmail scans answers in order and returns the first plain-text value
// that looks like the respondent email: the field type declares an email
// input, or the field key contains "email", or the label does. The result is
// lower-cased and trimmed. Callers must reject the submission when no email
// is found.
func ExtractEmail(answers []models.Answer) (string, bool) {
	for _, a := range answers {
		if a.Value.Kind != models.ValueText {
			continue
		}
		if !isEmailType(a.Type) && !containsFold(a.Key, "email") && !containsFold(a.Label, "email") {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(a.Value.Text))
		if email != "" {
			return email, true
		}
	}
	return "", false
}

// FindAttentionAnswer locates the attention-check question by configured field
// key or label substring. Unanswered entries are skipped: branching forms ask
// the same question on several branches and only populate the one shown.
// The answer is normalized to a single string (multi-choice takes the first
// selection).
func FindAttentionAnswer(answers []models.Answer, cfg Config) (string, bool) {
	for _, a := range answers {
		if a.Value.Kind == models.ValueNone {
			continue
		}
		byKey := cfg.AttentionFieldKey != "" && a.Key == cfg.AttentionFieldKey
		byLabel := cfg.AttentionLabelMatch != "" && containsFold(a.Label, cfg.AttentionLabelMatch)
		if !byKey && !byLabel {
			continue
		}
		return singleText(a.Value), true
	}
	return "", false
}

// AnswerText returns the text of the answer with the given key.
func AnswerText(answers []models.Answer, key string) (string, bool) {
	for _, a := range answers {
		if a.Key != key || a.Value.Kind == models.ValueNone {
			continue
		}
		return singleText(a.Value), true
	}
	return "", false
}

func singleText(v models.AnswerValue) string {
	switch v.Kind {
	case models.ValueText:
		return v.Text
	case models.ValueList:
		if len(v.List) > 0 {
			return v.List[0]
		}
	}
	return ""
}

func isEmailType(fieldType string) bool {
	switch strings.ToUpper(fieldType) {
	case "INPUT_EMAIL", "EMAIL", "EMAIL_ADDRESS":
		return true
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
