package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/repository"
	"github.com/dom/taskchat-backend/internal/repository/gormstore"
	"github.com/dom/taskchat-backend/internal/responder"
	"github.com/dom/taskchat-backend/internal/service"
	"github.com/dom/taskchat-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResponder struct {
	seen []string
}

func (e *echoResponder) Respond(_ context.Context, message string) string {
	e.seen = append(e.seen, message)
	return "echo: " + message
}

func newChatService(t *testing.T, r responder.Responder) (*service.ChatService, *repository.Repositories, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := gormstore.NewRepositories(testDB.DB)
	return service.NewChatService(repos, r), repos, testDB
}

func TestChatService_NewConversation(t *testing.T) {
	echo := &echoResponder{}
	chatService, repos, testDB := newChatService(t, echo)
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	result, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "plan my week"})
	require.NoError(t, err)
	assert.Equal(t, "echo: plan my week", result.Response)
	assert.Equal(t, []string{"plan my week"}, echo.seen)

	conversations, err := chatService.ListConversations(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, result.ConversationID, conversations[0].ID)

	messages, err := repos.Message.ListByConversation(ctx, result.ConversationID)
	require.NoError(t, err)
	testutil.AssertMessageRoles(t, messages, domain.MessageRoleUser, domain.MessageRoleAssistant)
	assert.Equal(t, "plan my week", messages[0].Content)
	assert.Equal(t, "echo: plan my week", messages[1].Content)
}

func TestChatService_EachCallWithoutIDStartsConversation(t *testing.T) {
	chatService, repos, testDB := newChatService(t, responder.NewRuleResponder())
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	first, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "hello"})
	require.NoError(t, err)
	second, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "hello again"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ConversationID, second.ConversationID)

	for _, id := range []uuid.UUID{first.ConversationID, second.ConversationID} {
		messages, err := repos.Message.ListByConversation(ctx, id)
		require.NoError(t, err)
		assert.Len(t, messages, 2)
	}
}

func TestChatService_ContinueConversation(t *testing.T) {
	chatService, _, testDB := newChatService(t, responder.NewRuleResponder())
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	first, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "hello"})
	require.NoError(t, err)

	id := first.ConversationID
	second, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "delete the report", ConversationID: &id})
	require.NoError(t, err)
	assert.Equal(t, id, second.ConversationID)
	assert.Equal(t, "I can help you delete a task. Which task would you like to delete?", second.Response)

	messages, err := chatService.ListMessages(ctx, owner.ID, id)
	require.NoError(t, err)
	testutil.AssertMessageRoles(t, messages,
		domain.MessageRoleUser, domain.MessageRoleAssistant,
		domain.MessageRoleUser, domain.MessageRoleAssistant)
	assert.Equal(t, "delete the report", messages[2].Content)
}

func TestChatService_ForeignConversation(t *testing.T) {
	echo := &echoResponder{}
	chatService, repos, testDB := newChatService(t, echo)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	result, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "mine"})
	require.NoError(t, err)
	id := result.ConversationID

	_, err = chatService.Chat(ctx, intruder.ID, service.ChatInput{Message: "sneaky", ConversationID: &id})
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)

	_, err = chatService.ListMessages(ctx, intruder.ID, id)
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)

	// Nothing was written and the responder never ran.
	messages, err := repos.Message.ListByConversation(ctx, id)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, []string{"mine"}, echo.seen)

	missing := uuid.New()
	_, err = chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "hi", ConversationID: &missing})
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestChatService_EmptyMessage(t *testing.T) {
	chatService, _, testDB := newChatService(t, &echoResponder{})
	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := chatService.Chat(context.Background(), owner.ID, service.ChatInput{Message: "   "})
	assert.ErrorIs(t, err, service.ErrEmptyMessage)
}

func TestChatService_RecordsResponderInMetadata(t *testing.T) {
	chatService, _, testDB := newChatService(t, responder.NewRuleResponder())
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "hello"})
	require.NoError(t, err)

	conversations, err := chatService.ListConversations(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)

	var metadata domain.ConversationMetadata
	require.NoError(t, json.Unmarshal(conversations[0].Metadata, &metadata))
	assert.Equal(t, "rules", metadata.Responder)
}

func TestChatService_ListConversationsMostRecentFirst(t *testing.T) {
	chatService, _, testDB := newChatService(t, responder.NewRuleResponder())
	ctx := context.Background()
	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	older, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "first"})
	require.NoError(t, err)
	newer, err := chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "second"})
	require.NoError(t, err)

	// Continuing the older conversation moves it to the top.
	id := older.ConversationID
	_, err = chatService.Chat(ctx, owner.ID, service.ChatInput{Message: "third", ConversationID: &id})
	require.NoError(t, err)

	conversations, err := chatService.ListConversations(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, older.ConversationID, conversations[0].ID)
	assert.Equal(t, newer.ConversationID, conversations[1].ID)
}
