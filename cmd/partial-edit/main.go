package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/deepaste-ai/partial-edit/internal/config"
	"github.com/deepaste-ai/partial-edit/internal/fileops"
	"github.com/deepaste-ai/partial-edit/internal/gitstage"
	"github.com/deepaste-ai/partial-edit/internal/llmpatch"
	"github.com/deepaste-ai/partial-edit/internal/logging"
	"github.com/deepaste-ai/partial-edit/internal/patch"
	"github.com/deepaste-ai/partial-edit/internal/ui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "dev"
	// GitCommit is set during build
	GitCommit = "none"

	appLogger logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "partial-edit <file> <task>",
	Short: "Apply a natural-language edit to a single file via a generated patch",
	Long: `partial-edit asks an LLM collaborator to rewrite one file for a
natural-language task, expressed as a patch in the apply_patch sentinel
format, then applies that patch to the file on disk.

Examples:
  partial-edit main.go "add error handling to the Read function"
  partial-edit apply changes.patch ./myproject`,
	Args:    cobra.MinimumNArgs(2),
	Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
	RunE:    runEdit,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to a file")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip the interactive approval prompt")

	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(completionCmd())
}

func initLogger(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	logFile, _ := cmd.Flags().GetString("log-file")

	var err error
	if debug {
		if logFile == "" {
			cacheDir, cerr := os.UserCacheDir()
			if cerr != nil {
				cacheDir = "."
			}
			logFile = filepath.Join(cacheDir, "partial-edit", "logs",
				fmt.Sprintf("partial-edit-%s.log", time.Now().Format("20060102-150405")))
		}
		appLogger, err = logging.NewFileLogger(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file logger: %v\n", err)
			os.Exit(1)
		}
	} else {
		appLogger = logging.NewNilLogger()
	}
}

// runEdit implements `partial-edit <file> <task>`.
func runEdit(cmd *cobra.Command, args []string) error {
	initLogger(cmd)
	defer appLogger.Close()

	path := args[0]
	task := strings.Join(args[1:], " ")

	info, err := fileops.GetFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if !info.Exists {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if task == "" {
		return fmt.Errorf("a task description is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	runID := uuid.New().String()
	appLogger.Log("[%s] Requesting patch for %s: %s", runID, path, task)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.APITimeout)*time.Second)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Log("Cancellation signal received.")
		cancel()
	}()

	files := map[string]string{path: info.Content}
	patchText, err := llmpatch.GeneratePatch(ctx, cfg, task, files)
	if err != nil {
		return fmt.Errorf("error generating patch: %w", err)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		approved, err := ui.GetApproval(
			fmt.Sprintf("Apply patch to %s", path),
			ui.FormatPatchForDisplay(patchText),
			task,
		)
		if err != nil {
			return fmt.Errorf("error showing approval prompt: %w", err)
		}
		if !approved {
			fmt.Println("Aborted.")
			return nil
		}
	}

	changed, err := patch.ProcessPatch(patchText, files)
	if err != nil {
		return fmt.Errorf("error applying patch: %w", err)
	}

	oldPath := path + ".old"
	if err := os.Rename(path, oldPath); err != nil {
		return fmt.Errorf("error saving %s: %w", oldPath, err)
	}
	if err := fileops.WriteFile(path, changed[path], info.Mode); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := fileops.WriteFile(path+".patch", patchText, 0644); err != nil {
		return fmt.Errorf("error writing %s.patch: %w", path, err)
	}

	if cfg.GitAdd {
		if err := gitstage.Stage(filepath.Dir(path), []string{path}, nil); err != nil {
			appLogger.Log("Warning: git staging failed: %v", err)
			fmt.Fprintf(os.Stderr, "Warning: git staging failed: %v\n", err)
		}
	}

	fmt.Printf("Wrote %s (original saved to %s, patch saved to %s.patch)\n", path, oldPath, path)
	return nil
}

// applyCmd implements `partial-edit apply <patchfile> [dir]`.
func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <patchfile> [dir]",
		Short: "Apply an already-written patch against a directory tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogger(cmd)
			defer appLogger.Close()

			patchPath := args[0]
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}

			patchBytes, err := os.ReadFile(patchPath)
			if err != nil {
				return fmt.Errorf("error reading patch file: %w", err)
			}
			patchText := string(patchBytes)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			gitAdd, _ := cmd.Flags().GetBool("git-add")
			cfg.GitAdd = cfg.GitAdd || gitAdd

			runID := uuid.New().String()
			appLogger.Log("[%s] Applying %s to %s", runID, patchPath, dir)

			needed := patch.FilesNeeded(patchText)
			files := make(map[string]string, len(needed))
			for _, rel := range needed {
				info, err := fileops.GetFile(filepath.Join(dir, rel))
				if err != nil {
					return fmt.Errorf("error reading %s: %w", rel, err)
				}
				if info.Exists {
					files[rel] = info.Content
				}
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				approved, err := ui.GetApproval(
					fmt.Sprintf("Apply %s to %s", patchPath, dir),
					ui.FormatPatchForDisplay(patchText),
					fmt.Sprintf("%d file(s) touched", len(needed)),
				)
				if err != nil {
					return fmt.Errorf("error showing approval prompt: %w", err)
				}
				if !approved {
					fmt.Println("Aborted.")
					return nil
				}
			}

			p, _, err := patch.TextToPatch(patchText, files)
			if err != nil {
				return fmt.Errorf("error parsing patch: %w", err)
			}
			commit, err := patch.PatchToCommit(p, files)
			if err != nil {
				return fmt.Errorf("error building commit: %w", err)
			}
			changed := patch.ApplyCommit(commit)

			touched := make([]string, 0, len(changed))
			for rel := range changed {
				touched = append(touched, rel)
			}

			var removed []string
			for _, rel := range commit.Order {
				fc := commit.Changes[rel]
				if fc.Kind == patch.ActionDelete || fc.MovePath != "" {
					removed = append(removed, rel)
				}
			}

			if err := fileops.WriteChanged(dir, changed, removed); err != nil {
				return fmt.Errorf("error writing changes: %w", err)
			}

			if cfg.GitAdd {
				if err := gitstage.Stage(dir, touched, removed); err != nil {
					appLogger.Log("Warning: git staging failed: %v", err)
					fmt.Fprintf(os.Stderr, "Warning: git staging failed: %v\n", err)
				}
			}

			fmt.Printf("Applied %s to %s (%d path(s) touched, %d removed)\n", patchPath, dir, len(touched), len(removed))
			return nil
		},
	}
	cmd.Flags().Bool("git-add", false, "Stage changed paths with git after applying")
	return cmd
}

func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				cmd.Root().GenFishCompletion(os.Stdout, true)
			}
		},
	}
	return cmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if appLogger != nil && appLogger.IsEnabled() {
			appLogger.Log("Command execution failed: %v", err)
		}
		os.Exit(1)
	}
}
