package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dodey917/Iknowall1bot/internal/config"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch and parse the source document, reporting what it holds",
	Long: `Force-fetch the configured document and parse it, reporting the number of
question/answer pairs found. Useful for checking document formatting after
an edit: a document that parses to zero pairs is reported as an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		base, _, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		if err := initialRefresh(base); err != nil {
			return err
		}

		fmt.Printf("Source: %s (%s)\n", cfg.Source.Name, cfg.Source.Type)
		fmt.Printf("Answers: %d\n", base.Len())
		fmt.Printf("Fingerprint: %s\n", base.Fingerprint()[:12])
		return nil
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions the knowledge base currently answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		base, _, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		if err := initialRefresh(base); err != nil {
			return err
		}

		for _, r := range base.Records() {
			fmt.Println(r.Question)
		}
		return nil
	},
}
