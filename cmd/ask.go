package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Long:  `Answers one question and exits. Questions matching a known intent go to live data handlers; everything else is answered from the indexed knowledge base.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("user", "", "stable user identity for result caching")
	askCmd.Flags().Bool("json", false, "output the full answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := strings.Join(args, " ")

	userID, _ := cmd.Flags().GetString("user")
	jsonOutput, _ := cmd.Flags().GetBool("json")

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

	if userID == "" {
		userID = uuid.NewString()
	}

	answer := a.HandleQuery(ctx, question, userID)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	fmt.Println(answer.Text)
	return nil
}
