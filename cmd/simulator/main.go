package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiURL   string
	email    string
	password string

	rootCmd = &cobra.Command{
		Use:   "simulator",
		Short: "Development tool that drives the task and chat API end to end",
		Long: `simulator exercises a running backend over HTTP: it creates users,
manages tasks and sends chat messages, printing each step.`,
		SilenceUsage: true,
	}

	fullCmd = &cobra.Command{
		Use:   "full",
		Short: "Sign up a fresh user and walk through task CRUD and chat",
		RunE:  runFull,
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Create sample tasks for an existing user",
		RunE:  runSeed,
	}

	chatCmd = &cobra.Command{
		Use:   "chat [message]",
		Short: "Send one chat message as an existing user",
		Args:  cobra.ExactArgs(1),
		RunE:  runChat,
	}

	seedCount      int
	conversationID string
)

func init() {
	defaultURL := "http://localhost:8000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		defaultURL = envURL
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "Backend base URL (env API_URL)")

	for _, cmd := range []*cobra.Command{seedCmd, chatCmd} {
		cmd.Flags().StringVar(&email, "email", "", "Account email")
		cmd.Flags().StringVar(&password, "password", "", "Account password")
		cmd.MarkFlagRequired("email")
		cmd.MarkFlagRequired("password")
	}

	seedCmd.Flags().IntVar(&seedCount, "count", 5, "Number of tasks to create")
	chatCmd.Flags().StringVar(&conversationID, "conversation", "", "Continue an existing conversation")

	rootCmd.AddCommand(fullCmd, seedCmd, chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func step(label string, fn func() (string, error)) error {
	fmt.Printf("%-40s ", label+"...")
	detail, err := fn()
	if err != nil {
		fmt.Println("FAILED")
		return err
	}
	if detail != "" {
		fmt.Printf("OK (%s)\n", detail)
	} else {
		fmt.Println("OK")
	}
	return nil
}

func runFull(cmd *cobra.Command, args []string) error {
	client := NewAPIClient(apiURL)

	fmt.Println("=== Simulator: Full Flow ===")
	fmt.Println()

	suffix := time.Now().UnixNano() % 100000
	userEmail := fmt.Sprintf("sim_%d@example.com", suffix)
	userPassword := "testpassword123"

	var user *User
	var token string
	var task *Task
	var conversation string

	steps := []struct {
		label string
		fn    func() (string, error)
	}{
		{"Signing up " + userEmail, func() (string, error) {
			var err error
			user, err = client.SignUp(userEmail, fmt.Sprintf("Sim User %d", suffix), userPassword)
			if err != nil {
				return "", err
			}
			return user.ID, nil
		}},
		{"Signing in", func() (string, error) {
			var err error
			token, err = client.SignIn(userEmail, userPassword)
			return "", err
		}},
		{"Creating task", func() (string, error) {
			var err error
			task, err = client.CreateTask(token, user.ID, "Buy groceries", "Milk, eggs, bread")
			if err != nil {
				return "", err
			}
			return task.ID, nil
		}},
		{"Renaming task", func() (string, error) {
			updated, err := client.UpdateTask(token, user.ID, task.ID, map[string]interface{}{"title": "Buy groceries today"})
			if err != nil {
				return "", err
			}
			return updated.Title, nil
		}},
		{"Completing task", func() (string, error) {
			toggled, err := client.ToggleTask(token, user.ID, task.ID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("completed=%t", toggled.Completed), nil
		}},
		{"Listing tasks", func() (string, error) {
			tasks, err := client.ListTasks(token, user.ID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d task(s)", len(tasks)), nil
		}},
		{"Chatting", func() (string, error) {
			reply, err := client.Chat(token, user.ID, "Hello! Can you list my tasks?", "")
			if err != nil {
				return "", err
			}
			conversation = reply.ConversationID
			return reply.Response, nil
		}},
		{"Continuing conversation", func() (string, error) {
			reply, err := client.Chat(token, user.ID, "Please delete the groceries task", conversation)
			if err != nil {
				return "", err
			}
			return reply.Response, nil
		}},
		{"Listing conversations", func() (string, error) {
			conversations, err := client.ListConversations(token, user.ID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d conversation(s)", len(conversations)), nil
		}},
		{"Deleting task", func() (string, error) {
			return "", client.DeleteTask(token, user.ID, task.ID)
		}},
	}

	for _, s := range steps {
		if err := step(s.label, s.fn); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Printf("  Email:    %s\n", userEmail)
	fmt.Printf("  Password: %s\n", userPassword)
	fmt.Printf("  User ID:  %s\n", user.ID)
	fmt.Println("=========================================")
	return nil
}

func signIn(client *APIClient) (*User, string, error) {
	token, err := client.SignIn(email, password)
	if err != nil {
		return nil, "", err
	}
	user, err := client.Me(token)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedCount < 1 || seedCount > 100 {
		return fmt.Errorf("--count must be between 1 and 100")
	}

	client := NewAPIClient(apiURL)
	user, token, err := signIn(client)
	if err != nil {
		return err
	}

	for i := 1; i <= seedCount; i++ {
		task, err := client.CreateTask(token, user.ID, fmt.Sprintf("Sample Task %d", i), "Created by the simulator")
		if err != nil {
			return fmt.Errorf("[%d/%d] %w", i, seedCount, err)
		}
		fmt.Printf("  [%d/%d] %s (%s)\n", i, seedCount, task.Title, task.ID)
	}
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	client := NewAPIClient(apiURL)
	user, token, err := signIn(client)
	if err != nil {
		return err
	}

	reply, err := client.Chat(token, user.ID, args[0], conversationID)
	if err != nil {
		return err
	}

	fmt.Printf("assistant: %s\n", reply.Response)
	fmt.Printf("conversation: %s\n", reply.ConversationID)
	return nil
}
