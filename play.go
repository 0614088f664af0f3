package main

import (
	"context"

	"github.com/spf13/cobra"

	"magearena/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := game.NewGame(a.session, a.threading, a.logger)
	if err != nil {
		return err
	}
	return game.Run(g)
}
