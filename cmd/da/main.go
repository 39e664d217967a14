package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"da-go/internal/app"
	"da-go/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a DAApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Upload", "Analyze").
func newApp(operation, parameters string) (*app.DAApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewDAApp(cfg, operation, parameters)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// promptPassphrase reads a passphrase without echo. When DA_SESSION_TOKEN
// is set the credential cache is bypassed, so no passphrase is needed.
func promptPassphrase(prompt string) (string, error) {
	if os.Getenv("DA_SESSION_TOKEN") != "" {
		return "", nil
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pw), nil
}

// authenticate unlocks the credential cache and starts a session.
func authenticate(a *app.DAApp, cmd *cobra.Command) error {
	pw, err := promptPassphrase("Passphrase: ")
	if err != nil {
		return err
	}
	return a.Authenticate(cmd.Context(), pw)
}

var rootCmd = &cobra.Command{
	Use:   "da",
	Short: "Document analysis client",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Println("Set backend.base_url and identity.token_url before first use.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Backend:     %s\n", cfg.Backend.BaseURL)
		fmt.Printf("Token URL:   %s\n", cfg.Identity.TokenURL)
		fmt.Printf("Model:       %s\n", cfg.Analysis.DefaultModel)
		return nil
	},
}

// login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the identity credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Login", "")
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprint(os.Stderr, "Credential: ")
		cred, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading credential: %w", err)
		}

		fmt.Fprint(os.Stderr, "Passphrase: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading passphrase: %w", err)
		}

		if err := a.Login(cmd.Context(), strings.TrimSpace(string(cred)), string(pw)); err != nil {
			return err
		}

		fmt.Println("Logged in.")
		return nil
	},
}

// logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Logout", "")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

// files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List uploaded files",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, _ := cmd.Flags().GetBool("stats")

		a, err := newApp("FetchFiles", "")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := authenticate(a, cmd); err != nil {
			return err
		}

		files, err := a.FetchFiles(cmd.Context())
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Println("No files uploaded.")
			return nil
		}

		for _, f := range files {
			fmt.Printf("#%d  %-12s  %8d  %s\n", f.ID, f.Status, f.FileSize, f.FileName)
		}

		if stats {
			agg := a.FileStats()
			fmt.Printf("\n%d file(s), %.2f MiB, %d completed, %d processing\n",
				agg.TotalCount, agg.TotalSizeMiB, agg.CompletedCount, agg.ProcessingCount)
		}
		return nil
	},
}

// upload command
var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Upload", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := authenticate(a, cmd); err != nil {
			a.SetFailed()
			return err
		}

		res, err := a.Upload(cmd.Context(), args[0])
		if err != nil {
			a.SetFailed()
			return err
		}

		fmt.Printf("Uploaded as file #%d (%s)\n", res.FileID, res.S3Key)
		return nil
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an uploaded file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid file id: %s", args[0])
		}

		a, err := newApp("Delete", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := authenticate(a, cmd); err != nil {
			a.SetFailed()
			return err
		}

		if err := a.Delete(cmd.Context(), id); err != nil {
			a.SetFailed()
			return err
		}
		return nil
	},
}

// analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE_PATH",
	Short: "Request document analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contest, _ := cmd.Flags().GetString("contest")
		model, _ := cmd.Flags().GetString("model")
		timeout, _ := cmd.Flags().GetInt("timeout")

		a, err := newApp("Analyze", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := authenticate(a, cmd); err != nil {
			a.SetFailed()
			return err
		}

		res, err := a.Analyze(cmd.Context(), args[0], contest, timeout, model)
		if err != nil {
			a.SetFailed()
			return err
		}

		fmt.Printf("Analysis complete: %d section(s) analyzed (%s)\n", res.SectionsAnalyzed, res.ContestType)
		return nil
	},
}

// result command
var resultCmd = &cobra.Command{
	Use:   "result FILE_ID",
	Short: "Fetch an analysis report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		dimension, _ := cmd.Flags().GetString("detail")

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid file id: %s", args[0])
		}

		a, err := newApp("Result", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := authenticate(a, cmd); err != nil {
			a.SetFailed()
			return err
		}

		if dimension != "" {
			out, err := a.Detail(cmd.Context(), dimension, id)
			if err != nil {
				a.SetFailed()
				return err
			}
			fmt.Println(out)
			return nil
		}

		report, archiveID, err := a.Result(cmd.Context(), id, save)
		if err != nil {
			a.SetFailed()
			return err
		}

		fmt.Printf("%s\n", report.Title)
		fmt.Printf("Total score: %.1f\n", report.TotalScore)
		fmt.Printf("\n%s\n", report.OverallAssessment)

		printSection := func(heading string, items []string) {
			if len(items) == 0 {
				return
			}
			fmt.Printf("\n%s:\n", heading)
			for _, s := range items {
				fmt.Printf("  - %s\n", s)
			}
		}
		printSection("Strengths", report.Strengths)
		printSection("Weaknesses", report.Weaknesses)
		printSection("Improvement suggestions", report.ImprovementSuggestions)

		if len(report.EvaluationCriteria) > 0 {
			fmt.Println("\nCriteria:")
			for _, c := range report.EvaluationCriteria {
				mark := "FAIL"
				if c.IsPassed {
					mark = "PASS"
				}
				fmt.Printf("  %-20s  %.1f/%.1f  [%s]\n", c.Category, c.Score, c.MaxScore, mark)
			}
		}

		if archiveID != "" {
			fmt.Printf("\nSaved to archive: %s\n", archiveID)
		}
		return nil
	},
}

// reports command
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List archived reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("Reports", "")
		if err != nil {
			return err
		}
		defer a.Close()

		reports, err := a.Reports(limit)
		if err != nil {
			return err
		}

		if len(reports) == 0 {
			fmt.Println("No archived reports.")
			return nil
		}

		for _, r := range reports {
			fmt.Printf("%s  file:%d  %.1f  %s  %s\n",
				r.ID,
				r.FileID,
				r.TotalScore,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Title,
			)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("History", "")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-12s  %s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

// models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available analysis models",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Models", "")
		if err != nil {
			return err
		}
		defer a.Close()

		current := a.Models().Current()
		for _, m := range a.Models().List() {
			marker := " "
			if m == current {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, m)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(filesCmd)
	filesCmd.Flags().Bool("stats", false, "Show aggregate statistics")
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("contest", "", "Contest type for evaluation")
	analyzeCmd.Flags().String("model", "", "Analysis model to use")
	analyzeCmd.Flags().Int("timeout", 0, "Analysis timeout in seconds")
	rootCmd.AddCommand(resultCmd)
	resultCmd.Flags().Bool("save", false, "Save the report to the local archive")
	resultCmd.Flags().String("detail", "", "Fetch one detail dimension (market, financial, technical, risk)")
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.Flags().IntP("limit", "n", 20, "Maximum number of reports to show")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(modelsCmd)
}
