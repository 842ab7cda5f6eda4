package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Slidecraft",
	Long:  `Collect API keys and credentials and write them to a .env file.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🎞  Slidecraft Setup"))

	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := collectRequiredKeys(env); err != nil {
		return err
	}
	if err := collectOptionalKeys(env); err != nil {
		return err
	}

	if err := runWithSpinner("Writing .env", func() error {
		return writeEnvFile(env)
	}); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Wrote .env"))
	fmt.Println(infoStyle.Render("Place your service account JSON at the path set in GOOGLE_CREDENTIALS_FILE"))
	return nil
}

func collectRequiredKeys(env map[string]string) error {
	fields := []struct {
		key         string
		title       string
		description string
	}{
		{"OPENAI_API_KEY", "OpenAI API key", "Used for slide text generation (default provider)"},
		{"GOOGLE_API_KEY", "Google API key", "Used for Custom Search image lookups"},
		{"GOOGLE_CSE_ID", "Custom Search Engine ID", "The cx identifier of your search engine"},
	}

	for _, field := range fields {
		var value string
		if err := huh.NewInput().
			Title(field.title).
			Description(field.description).
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run(); err != nil {
			return err
		}
		if value == "" {
			fmt.Println(warnStyle.Render("⚠ Skipped " + field.key))
			continue
		}
		env[field.key] = value
	}

	return nil
}

func collectOptionalKeys(env map[string]string) error {
	var configure bool
	if err := huh.NewConfirm().
		Title("Configure optional settings?").
		Description("Alternative LLM providers, credentials path, GCS archiving").
		Value(&configure).
		Run(); err != nil {
		return err
	}
	if !configure {
		return nil
	}

	fields := []struct {
		key    string
		title  string
		secret bool
	}{
		{"GEMINI_API_KEY", "Gemini API key (llm.provider: gemini)", true},
		{"GROQ_API_KEY", "Groq API key (llm.provider: groq)", true},
		{"GOOGLE_CREDENTIALS_FILE", "Service account JSON path (default credentials.json)", false},
		{"GCS_BUCKET", "GCS bucket for run archives", false},
		{"GOOGLE_CLOUD_PROJECT", "Project ID for Secret Manager lookups", false},
	}

	for _, field := range fields {
		var value string
		input := huh.NewInput().Title(field.title).Value(&value)
		if field.secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		if err := input.Run(); err != nil {
			return err
		}
		if value != "" {
			env[field.key] = value
		}
	}

	return nil
}

func writeEnvFile(env map[string]string) error {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, env[key])
	}

	return os.WriteFile(".env", []byte(b.String()), 0600)
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	if spinErr := spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run(); spinErr != nil {
		return spinErr
	}
	return err
}
