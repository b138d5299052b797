package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// editAction loads the buffer file and runs the interactive editor.
func editAction(_ context.Context, cmd *cli.Command) error {
	model, err := NewModel(cmd.String("file"), cmd.String("variable"))
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "candlepad-edit",
		Usage: "Edit an OHLCV dataset buffer as an ASCII candlestick chart",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the buffer file holding the dataset definition",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "variable",
				Aliases: []string{"v"},
				Usage:   "Name of the dataset variable in the buffer",
				Value:   "df",
			},
		},
		Action: editAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
