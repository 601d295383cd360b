package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dodey917/Iknowall1bot/internal/config"
	"github.com/dodey917/Iknowall1bot/internal/tui"
	"github.com/dodey917/Iknowall1bot/internal/update"
)

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	base, responder, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Loading knowledge base...")
	if err := initialRefresh(base); err != nil {
		return err
	}

	var updateVersion string
	if result := update.Check(context.Background(), version); result != nil {
		updateVersion = result.LatestVersion
	}

	return tui.Run(tui.RunOpts{
		Cfg:           cfg,
		Responder:     responder,
		Base:          base,
		UpdateVersion: updateVersion,
	})
}
