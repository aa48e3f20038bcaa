package responder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleResponder_Respond(t *testing.T) {
	r := NewRuleResponder()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "greeting",
			message: "Hello there",
			want:    "Hello! I'm your AI assistant. How can I help you with your tasks today?",
		},
		{
			name:    "greeting is case insensitive",
			message: "HELLO",
			want:    "Hello! I'm your AI assistant. How can I help you with your tasks today?",
		},
		{
			name:    "add task",
			message: "add a task for groceries",
			want:    "I can help you add a task. Please provide the task title and description.",
		},
		{
			name:    "create task",
			message: "Create a new task",
			want:    "I can help you add a task. Please provide the task title and description.",
		},
		{
			name:    "list",
			message: "show my tasks",
			want:    "I can help you list your tasks. You have 2 active tasks: 'Sample Task 1' and 'Sample Task 2'.",
		},
		{
			name:    "complete",
			message: "mark the report done",
			want:    "I can help you mark a task as complete. Which task would you like to mark as done?",
		},
		{
			name:    "delete",
			message: "delete the report",
			want:    "I can help you delete a task. Which task would you like to delete?",
		},
		{
			name:    "update",
			message: "update the report",
			want:    "I can help you update a task. Which task would you like to update?",
		},
		{
			name:    "greeting wins over later rules",
			message: "hello, delete everything",
			want:    "Hello! I'm your AI assistant. How can I help you with your tasks today?",
		},
		{
			name:    "fallback echoes the message",
			message: "what is the weather",
			want: "I understand you said: 'what is the weather'. I'm your AI assistant and can help you manage your tasks. " +
				"You can ask me to add, list, update, or complete tasks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Respond(context.Background(), tt.message))
		})
	}
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "rules", NameOf(NewRuleResponder()))
	assert.Equal(t, "generative", NameOf(NewGenerativeResponder(GenerativeConfig{})))
}
