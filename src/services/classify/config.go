package classify

import (
	"os"
	"strconv"
)

// Config carries every classification knob. It is read from the environment
// once in main and injected, so the decision table itself stays a pure
// function of its inputs.
type Config struct {
	// attention check
	AttentionFieldKey   string // exact field key, e.g. "question_attn"
	AttentionLabelMatch string // case-insensitive label substring fallback
	CorrectAnswer       string // the expected answer token
	CorrectPhrase       string // tolerated phrase, matched case-insensitively

	// bot checks, each active only when configured
	HoneypotFieldKey     string
	MinCompletionSeconds float64
	TimingFieldKey       string // hidden field carrying the form-load unix millis
}

func (c Config) attentionConfigured() bool {
	return (c.AttentionFieldKey != "" || c.AttentionLabelMatch != "") &&
		(c.CorrectAnswer != "" || c.CorrectPhrase != "")
}

func ConfigFromEnv() Config {
	minSeconds, _ := strconv.ParseFloat(os.Getenv("MIN_COMPLETION_SECONDS"), 64)
	return Config{
		AttentionFieldKey:    os.Getenv("ATTENTION_FIELD_KEY"),
		AttentionLabelMatch:  os.Getenv("ATTENTION_LABEL_MATCH"),
		CorrectAnswer:        os.Getenv("ATTENTION_CORRECT_ANSWER"),
		CorrectPhrase:        os.Getenv("ATTENTION_CORRECT_PHRASE"),
		HoneypotFieldKey:     os.Getenv("HONEYPOT_FIELD_KEY"),
		MinCompletionSeconds: minSeconds,
		TimingFieldKey:       os.Getenv("TIMING_FIELD_KEY"),
	}
}
