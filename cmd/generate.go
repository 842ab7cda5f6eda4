package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/songsbyarchit/AmritArchit-v4/internal/app"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/config"
)

var generateTopic string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a presentation from a topic",
	Long: `Generate a Google Slides presentation: slide text from a language model,
an image per slide from Google image search, shared so anyone with
the link can edit.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateTopic, "topic", "t", "", "Topic for the presentation")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	topic := strings.TrimSpace(generateTopic)
	if topic == "" {
		if err := huh.NewInput().
			Title("Enter a topic for the presentation").
			Prompt("> ").
			Value(&topic).
			Run(); err != nil {
			return err
		}
		topic = strings.TrimSpace(topic)
	}
	if topic == "" {
		return errors.New("a topic is required")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer service.Close()

	pipeline := app.NewPipeline(service)

	slog.Info("Generating presentation...", "topic", topic)
	result, err := pipeline.Generate(ctx, topic)
	if err != nil {
		return err
	}

	slog.Info("Presentation ready",
		"slides", result.SlideCount,
		"operations", result.OperationCount,
	)

	fmt.Println(successStyle.Render("✓ Anyone with the link can edit: " + result.URL))
	for _, warning := range result.Warnings {
		fmt.Println(warnStyle.Render("⚠ " + warning))
	}

	return nil
}
