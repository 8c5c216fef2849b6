// Package keywords holds the rule tables the chat assistant uses in place of
// an NLU model: intent keywords, industry keyword bundles and the location
// gazetteer. Everything here is pure and safe for concurrent use.
package keywords

import (
	"strings"
)

// Intent is the classified purpose of a chat message
type Intent string

const (
	IntentThanks   Intent = "thanks"
	IntentGoodbye  Intent = "goodbye"
	IntentShowMore Intent = "show_more"
	IntentGreeting Intent = "greeting"
	IntentSearch   Intent = "search"
)

// IntentRule maps a keyword set to an intent
type IntentRule struct {
	Intent   Intent
	Keywords []string
}

// Matches reports whether the normalized message contains any keyword
func (r IntentRule) Matches(msg string) bool {
	return containsAny(msg, r.Keywords)
}

// IntentRules is checked in order, first match wins.
// Anything unmatched is a search.
var IntentRules = []IntentRule{
	{Intent: IntentThanks, Keywords: []string{"cảm ơn", "thanks", "thank you", "tks", "thx"}},
	{Intent: IntentGoodbye, Keywords: []string{"tạm biệt", "bye", "goodbye", "hẹn gặp lại", "see you", "gặp lại sau", "tôi đi đây"}},
	{Intent: IntentShowMore, Keywords: []string{"xem thêm", "thêm job", "nữa", "còn job"}},
	{Intent: IntentGreeting, Keywords: greetingKeywords},
}

var greetingKeywords = []string{"hi", "xin chào", "chào", "hello", "hey", "hí", "helo", "yo", "alo"}

// Normalize trims and lowercases a raw message
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Classify returns the intent of a raw message
func Classify(raw string) Intent {
	msg := Normalize(raw)
	for _, rule := range IntentRules {
		if rule.Matches(msg) {
			return rule.Intent
		}
	}
	return IntentSearch
}

// IsGreeting reports whether the message greets, regardless of its intent.
// A greeting never short-circuits search; it only picks a friendlier reply
// when nothing was found.
func IsGreeting(raw string) bool {
	return containsAny(Normalize(raw), greetingKeywords)
}

// IsFastPath reports whether the intent is answered without any search
func (i Intent) IsFastPath() bool {
	return i == IntentThanks || i == IntentGoodbye
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
