package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Opens a terminal chat session with the assistant. Type /intents to list routed intents, /exit or Ctrl-D to leave.`,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().String("user", "", "stable user identity for result caching")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	a, err := newAssistant(cfg, provider, log)
	if err != nil {
		return err
	}
	if engine := loadEngine(ctx, cfg, log); engine != nil {
		a.SwapEngine(engine)
	}

	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = uuid.NewString()
	}

	fmt.Printf("finchat %s. Ask about stocks, funds, SIPs, EMIs, or anything financial.\n", Version)
	fmt.Println("Type /intents to list routed intents, /exit to leave.")
	fmt.Println()

	prompt := promptui.Prompt{Label: "you"}
	for {
		line, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("bye")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "/exit", "/quit":
			fmt.Println("bye")
			return nil
		case "/intents":
			for i, intent := range a.Intents() {
				fmt.Printf("  %d. %s\n", i+1, intent)
			}
			continue
		}

		answer := a.HandleQuery(ctx, line, userID)
		fmt.Println()
		fmt.Println(answer.Text)
		fmt.Println()
	}
}
