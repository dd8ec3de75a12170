package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/finder"
	"github.com/spigell/job-finder/internal/jobs"
	"github.com/spigell/job-finder/internal/logger"
	"github.com/spigell/job-finder/internal/output"
)

const (
	PromptShowDetails    = "Show posting details"
	PromptReportBySource = "Report by source"
	PromptPostingsToFile = "Dump postings to file"
	PromptExit           = "Exit"
	PromptBack           = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowDetails, PromptReportBySource, PromptPostingsToFile, PromptExit},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search job boards with a plain language query",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		search(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("format", "o", output.FormatCLI, "output format: "+strings.Join(output.Formats, ", "))
	searchCmd.Flags().BoolP("interactive", "i", false, "browse the found postings after the search")
	searchCmd.Flags().Bool("no-ai", false, "compile the query with the heuristic parser only")
}

// setup builds the logger, config and finder shared by the query commands.
func setup(ctx context.Context, cmd *cobra.Command) (*zap.Logger, *finder.Finder) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	noAI, _ := cmd.Flags().GetBool("no-ai")

	f, err := newFinder(ctx, config, noAI, logger)
	if err != nil {
		logger.Fatal("creating the finder", zap.Error(err))
	}

	return logger, f
}

func search(cmd *cobra.Command, query string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, _ := cmd.Flags().GetString("format")
	if !output.ValidFormat(format) {
		log.Fatalf("unsupported output format %q (use one of %s)", format, strings.Join(output.Formats, ", "))
	}

	logger, f := setup(ctx, cmd)
	logger.Info("starting the job-finder", zap.String("version", version))

	result, err := f.Search(ctx, query)
	if err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	if err := output.Write(cmd.OutOrStdout(), format, result.Postings, result.FailedSources()); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive || result.Postings.Len() == 0 {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, result.Postings); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, postings *jobs.Postings) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptShowDetails:
		return showDetails(postings)
	case PromptReportBySource:
		pretty, _ := json.MarshalIndent(postings.ReportBySource(), "", "  ")
		fmt.Println(string(pretty))
	case PromptPostingsToFile:
		file, err := postings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dumping postings: %w", err)
		}
		logger.Info("postings dumped to file", zap.String("file", file))
	}
	return nil
}

func showDetails(postings *jobs.Postings) error {
	items := append(postings.IDs(), PromptBack)
	selectPosting := promptui.Select{
		Label: "Posting",
		Items: items,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}

	for {
		_, id, err := selectPosting.Run()
		if err != nil {
			return err
		}
		if id == PromptBack {
			return nil
		}

		posting := postings.FindByID(id)
		if posting == nil {
			return fmt.Errorf("there is no such posting id %s", id)
		}
		fmt.Println(output.Details(posting))
	}
}

// redacted returns a copy of the config that is safe to log.
func redacted(config *Config) *Config {
	out := *config
	if config.AI != nil && config.AI.Gemini != nil {
		ai := *config.AI
		gemini := *config.AI.Gemini
		gemini.APIKey = mask(gemini.APIKey)
		ai.Gemini = &gemini
		out.AI = &ai
	}
	if config.Sources != nil && config.Sources.GoogleJobs != nil {
		sources := *config.Sources
		google := *config.Sources.GoogleJobs
		google.APIKey = mask(google.APIKey)
		sources.GoogleJobs = &google
		out.Sources = &sources
	}
	return &out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
