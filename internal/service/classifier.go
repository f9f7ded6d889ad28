package service

import (
	"regexp"
	"strings"
)

// UtteranceKind tags an incoming message before retrieval.
type UtteranceKind int

const (
	// UtteranceSubstantive is the default: the message goes to retrieval.
	UtteranceSubstantive UtteranceKind = iota
	UtteranceGreeting
	UtteranceConversational
)

func (k UtteranceKind) String() string {
	switch k {
	case UtteranceGreeting:
		return "greeting"
	case UtteranceConversational:
		return "conversational"
	default:
		return "substantive"
	}
}

type classifierRule struct {
	pattern *regexp.Regexp
	kind    UtteranceKind
}

// Rules are evaluated in order and the first match wins. Greeting rules
// come before small-talk rules, so a message matching both is a greeting.
var classifierRules = []classifierRule{
	{regexp.MustCompile(`^(bonjour|salut|bonsoir|coucou|hello|hey)\b`), UtteranceGreeting},
	{regexp.MustCompile(`\bqui es[- ]tu\b`), UtteranceGreeting},
	{regexp.MustCompile(`\bcomment (tu t'appelles|t'appelles[- ]tu)\b`), UtteranceGreeting},
	{regexp.MustCompile(`\bje me présente\b`), UtteranceGreeting},
	{regexp.MustCompile(`\bcomment (vas[- ]tu|allez[- ]vous)\b`), UtteranceConversational},
	{regexp.MustCompile(`(^|\s)(ça|ca) va\s*[?!.]*$`), UtteranceConversational},
	{regexp.MustCompile(`^(merci|au revoir|bonne (journée|soirée))\b`), UtteranceConversational},
}

// ClassifyUtterance is a pure function: same text, same rule set, same
// result. Matching is done on the trimmed, lower-cased message.
func ClassifyUtterance(text string) UtteranceKind {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range classifierRules {
		if rule.pattern.MatchString(t) {
			return rule.kind
		}
	}
	return UtteranceSubstantive
}
