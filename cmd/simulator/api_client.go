package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Task struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Category    *string `json:"category"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

type Conversation struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignUp creates a new account
func (c *APIClient) SignUp(email, name, password string) (*User, error) {
	var user User
	err := c.do(http.MethodPost, "/auth/sign-up", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}, "", http.StatusOK, &user)
	if err != nil {
		return nil, fmt.Errorf("sign-up: %w", err)
	}
	return &user, nil
}

// SignIn returns an access token
func (c *APIClient) SignIn(email, password string) (string, error) {
	var token TokenResponse
	err := c.do(http.MethodPost, "/auth/sign-in/credentials", map[string]string{
		"email":    email,
		"password": password,
	}, "", http.StatusOK, &token)
	if err != nil {
		return "", fmt.Errorf("sign-in: %w", err)
	}
	return token.AccessToken, nil
}

// Me returns the user the token belongs to
func (c *APIClient) Me(token string) (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/auth/me", nil, token, http.StatusOK, &user); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &user, nil
}

func (c *APIClient) CreateTask(token, userID, title, description string) (*Task, error) {
	var task Task
	err := c.do(http.MethodPost, "/"+userID+"/tasks", map[string]string{
		"title":       title,
		"description": description,
	}, token, http.StatusCreated, &task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (c *APIClient) ListTasks(token, userID string) ([]Task, error) {
	var tasks []Task
	if err := c.do(http.MethodGet, "/"+userID+"/tasks", nil, token, http.StatusOK, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (c *APIClient) UpdateTask(token, userID, taskID string, fields map[string]interface{}) (*Task, error) {
	var task Task
	if err := c.do(http.MethodPut, "/"+userID+"/tasks/"+taskID, fields, token, http.StatusOK, &task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

func (c *APIClient) ToggleTask(token, userID, taskID string) (*Task, error) {
	var task Task
	if err := c.do(http.MethodPatch, "/"+userID+"/tasks/"+taskID+"/complete", nil, token, http.StatusOK, &task); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return &task, nil
}

func (c *APIClient) DeleteTask(token, userID, taskID string) error {
	if err := c.do(http.MethodDelete, "/"+userID+"/tasks/"+taskID, nil, token, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Chat sends one message. An empty conversationID starts a new conversation.
func (c *APIClient) Chat(token, userID, message, conversationID string) (*ChatResponse, error) {
	body := map[string]string{"message": message}
	if conversationID != "" {
		body["conversation_id"] = conversationID
	}

	var result ChatResponse
	if err := c.do(http.MethodPost, "/"+userID+"/chat", body, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	return &result, nil
}

func (c *APIClient) ListConversations(token, userID string) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.do(http.MethodGet, "/"+userID+"/conversations", nil, token, http.StatusOK, &conversations); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// do sends a JSON request and decodes the response into out when the
// status matches want.
func (c *APIClient) do(method, path string, body interface{}, token string, want int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
