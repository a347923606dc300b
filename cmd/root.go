package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finchat",
	Short: "Financial Q&A assistant with intent routing and knowledge retrieval",
	Long: `FinChat answers financial questions for India. Queries matching a known
intent (stock price, fund NAV, SIP, EMI) are routed to live data handlers;
everything else is answered from an indexed knowledge base, with graceful
fallbacks when the model or the index is unavailable.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
