package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/taskchat-backend/internal/metrics"
)

type rule struct {
	name    string
	matches func(lower string) bool
	reply   string
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Order matters: the first matching rule wins.
var rules = []rule{
	{
		name:    "greeting",
		matches: func(s string) bool { return containsAny(s, "hello", "hi") },
		reply:   "Hello! I'm your AI assistant. How can I help you with your tasks today?",
	},
	{
		name:    "task-add",
		matches: func(s string) bool { return strings.Contains(s, "task") && containsAny(s, "add", "create") },
		reply:   "I can help you add a task. Please provide the task title and description.",
	},
	{
		name:    "task-list",
		matches: func(s string) bool { return containsAny(s, "list", "show") },
		reply:   "I can help you list your tasks. You have 2 active tasks: 'Sample Task 1' and 'Sample Task 2'.",
	},
	{
		name:    "task-complete",
		matches: func(s string) bool { return containsAny(s, "complete", "done") },
		reply:   "I can help you mark a task as complete. Which task would you like to mark as done?",
	},
	{
		name:    "task-delete",
		matches: func(s string) bool { return strings.Contains(s, "delete") },
		reply:   "I can help you delete a task. Which task would you like to delete?",
	},
	{
		name:    "task-update",
		matches: func(s string) bool { return strings.Contains(s, "update") },
		reply:   "I can help you update a task. Which task would you like to update?",
	},
}

// RuleResponder answers from a fixed keyword table. It needs no network and
// is used when no model provider is configured for the deployment.
type RuleResponder struct{}

func NewRuleResponder() *RuleResponder {
	return &RuleResponder{}
}

func (r *RuleResponder) Name() string {
	return "rules"
}

func (r *RuleResponder) Respond(_ context.Context, message string) string {
	lower := strings.ToLower(message)
	for _, rl := range rules {
		if rl.matches(lower) {
			metrics.ResponderReplies.WithLabelValues(r.Name(), rl.name).Inc()
			return rl.reply
		}
	}

	metrics.ResponderReplies.WithLabelValues(r.Name(), "fallback").Inc()
	return fmt.Sprintf("I understand you said: '%s'. I'm your AI assistant and can help you manage your tasks. "+
		"You can ask me to add, list, update, or complete tasks.", message)
}
