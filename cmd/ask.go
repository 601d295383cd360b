package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dodey917/Iknowall1bot/internal/config"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>...",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		base, responder, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		if err := initialRefresh(base); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reply, warn := responder.Answer(ctx, strings.Join(args, " "))
		if warn != nil {
			fmt.Fprintf(os.Stderr, "[warn] %v\n", warn)
		}
		fmt.Println(reply)
		return nil
	},
}
