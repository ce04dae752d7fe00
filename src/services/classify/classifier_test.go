package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Backend-Reward-Pipeline/src/models"
	"Backend-Reward-Pipeline/src/services/classify"
)

func baseConfig() classify.Config {
	return classify.Config{
		AttentionFieldKey: "question_attn",
		CorrectAnswer:     "1",
		CorrectPhrase:     "option 1",
	}
}

func submissionWith(attention string) *models.Submission {
	return &models.Submission{
		Email: "a@x.com",
		Answers: []models.Answer{
			textAnswer("question_email", "Email", "INPUT_EMAIL", "a@x.com"),
			textAnswer("question_attn", "Please select option 1", "MULTIPLE_CHOICE", attention),
		},
	}
}

func TestClassifyOutcomes(t *testing.T) {
	cfg := baseConfig()

	t.Run("Valid", func(t *testing.T) {
		res := classify.Classify(submissionWith("1"), cfg, false)
		assert.Equal(t, models.ClassificationValid, res.Outcome)
		assert.Empty(t, res.Reason)
	})

	t.Run("AttentionFail", func(t *testing.T) {
		res := classify.Classify(submissionWith("2"), cfg, false)
		assert.Equal(t, models.ClassificationAttentionFail, res.Outcome)
		assert.Contains(t, res.Reason, `"2"`)
	})

	t.Run("Duplicate", func(t *testing.T) {
		res := classify.Classify(submissionWith("1"), cfg, true)
		assert.Equal(t, models.ClassificationDuplicate, res.Outcome)
		assert.Contains(t, res.Reason, "a@x.com")
	})

	t.Run("DuplicateBeatsAttentionFail", func(t *testing.T) {
		res := classify.Classify(submissionWith("2"), cfg, true)
		assert.Equal(t, models.ClassificationDuplicate, res.Outcome)
	})
}

func TestClassifyAttentionTolerance(t *testing.T) {
	cfg := baseConfig()

	cases := []struct {
		name    string
		answer  string
		outcome string
	}{
		{"ExactToken", "1", models.ClassificationValid},
		{"AnswerContainsToken", "Answer 1 of course", models.ClassificationValid},
		{"PhraseCaseInsensitive", "I picked OPTION 1 as asked", models.ClassificationValid},
		{"WrongAnswer", "Option 3", models.ClassificationAttentionFail},
		{"EmptyAnswer", "", models.ClassificationAttentionFail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := classify.Classify(submissionWith(tc.answer), cfg, false)
			assert.Equal(t, tc.outcome, res.Outcome)
		})
	}
}

// A missing attention answer passes: branching forms legitimately hide the
// question from part of the respondents.
func TestClassifyMissingAttentionFailsOpen(t *testing.T) {
	cfg := baseConfig()

	sub := &models.Submission{
		Email: "a@x.com",
		Answers: []models.Answer{
			textAnswer("question_email", "Email", "INPUT_EMAIL", "a@x.com"),
		},
	}

	res := classify.Classify(sub, cfg, false)
	assert.Equal(t, models.ClassificationValid, res.Outcome)
}

func TestClassifyBotRules(t *testing.T) {
	t.Run("TooFastIsBot", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MinCompletionSeconds = 10

		sub := submissionWith("1")
		elapsed := 3.2
		sub.ElapsedSeconds = &elapsed

		res := classify.Classify(sub, cfg, false)
		assert.Equal(t, models.ClassificationBot, res.Outcome)
		assert.Contains(t, res.Reason, "3.2s")
	})

	t.Run("TimingRuleInactiveWithoutConfig", func(t *testing.T) {
		cfg := baseConfig()

		sub := submissionWith("1")
		elapsed := 3.2
		sub.ElapsedSeconds = &elapsed

		res := classify.Classify(sub, cfg, false)
		assert.Equal(t, models.ClassificationValid, res.Outcome)
	})

	t.Run("HoneypotFilledIsBot", func(t *testing.T) {
		cfg := baseConfig()
		cfg.HoneypotFieldKey = "question_website"

		sub := submissionWith("1")
		sub.Answers = append(sub.Answers, textAnswer("question_website", "Website", "INPUT_TEXT", "http://spam.example"))

		res := classify.Classify(sub, cfg, false)
		assert.Equal(t, models.ClassificationBot, res.Outcome)
	})

	t.Run("HoneypotEmptyPasses", func(t *testing.T) {
		cfg := baseConfig()
		cfg.HoneypotFieldKey = "question_website"

		sub := submissionWith("1")
		sub.Answers = append(sub.Answers, textAnswer("question_website", "Website", "INPUT_TEXT", " "))

		res := classify.Classify(sub, cfg, false)
		assert.Equal(t, models.ClassificationValid, res.Outcome)
	})

	t.Run("TimingBeatsDuplicate", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MinCompletionSeconds = 10

		sub := submissionWith("1")
		elapsed := 1.0
		sub.ElapsedSeconds = &elapsed

		res := classify.Classify(sub, cfg, true)
		assert.Equal(t, models.ClassificationBot, res.Outcome)
	})
}

func TestClassifyIsDeterministic(t *testing.T) {
	cfg := baseConfig()
	sub := submissionWith("2")

	first := classify.Classify(sub, cfg, false)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, classify.Classify(sub, cfg, false))
	}
}
