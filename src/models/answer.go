package models

import (
	"fmt"
	"strconv"
)

type ValueKind string

const (
	ValueText ValueKind = "text" // single scalar, option text when resolvable
	ValueList ValueKind = "list" // multi-choice, option texts when resolvable
	ValueNone ValueKind = "none" // question present but never answered (form branching)
)

// AnswerValue is the tagged representation every field value is resolved to at
// ingestion. Form builders emit values in three wire shapes (scalar, option-id
// array, option object); downstream logic only ever sees this one.
type AnswerValue struct {
	Kind ValueKind `bson:"kind" json:"kind"`
	Text string    `bson:"text,omitempty" json:"text,omitempty"`
	List []string  `bson:"list,omitempty" json:"list,omitempty"`
	Raw  any       `bson:"raw,omitempty" json:"raw,omitempty"` // wire value kept for diagnostics
}

type Answer struct {
	Key   string      `bson:"key" json:"key"`
	Label string      `bson:"label" json:"label"`
	Type  string      `bson:"type" json:"type"`
	Value AnswerValue `bson:"value" json:"value"`
}

// NormalizeAnswers resolves every webhook field into an Answer. Option ids are
// replaced by their human-readable option text where the field declares
// options; the raw wire value is retained alongside.
func NormalizeAnswers(fields []FormField) []Answer {
	answers := make([]Answer, 0, len(fields))
	for _, f := range fields {
		answers = append(answers, Answer{
			Key:   f.Key,
			Label: f.Label,
			Type:  f.Type,
			Value: normalizeValue(f.Value, f.Options),
		})
	}
	return answers
}

func normalizeValue(raw any, options []FieldOption) AnswerValue {
	switch v := raw.(type) {
	case nil:
		return AnswerValue{Kind: ValueNone}
	case string:
		return AnswerValue{Kind: ValueText, Text: resolveOption(v, options), Raw: raw}
	case bool:
		return AnswerValue{Kind: ValueText, Text: strconv.FormatBool(v), Raw: raw}
	case float64:
		return AnswerValue{Kind: ValueText, Text: strconv.FormatFloat(v, 'f', -1, 64), Raw: raw}
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			list = append(list, resolveOption(stringify(item), options))
		}
		return AnswerValue{Kind: ValueList, List: list, Raw: raw}
	case map[string]any:
		// option-object shape: prefer the id, resolved to its text
		if id, ok := v["id"].(string); ok {
			return AnswerValue{Kind: ValueText, Text: resolveOption(id, options), Raw: raw}
		}
		return AnswerValue{Kind: ValueText, Text: stringify(v), Raw: raw}
	default:
		return AnswerValue{Kind: ValueText, Text: stringify(raw), Raw: raw}
	}
}

func resolveOption(value string, options []FieldOption) string {
	for _, opt := range options {
		if opt.ID == value && opt.Text != "" {
			return opt.Text
		}
	}
	return value
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
