package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/app"
	"github.com/ternarybob/scribe/internal/common"
	"github.com/ternarybob/scribe/internal/services/titles"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	once        = flag.Bool("once", false, "Process one queue batch and exit")
	titleID     = flag.String("title", "", "Process a single title by id and exit")
	requeueID   = flag.String("requeue", "", "Move a failed title back to the queue and exit")
	limit       = flag.Int("limit", 0, "Max titles per batch (overrides config)")
	submit      = flag.String("submit", "", "Queue a new title and exit")
	platformID  = flag.Int64("platform", 0, "Platform id for -submit")
	countryID   = flag.Int64("country", 0, "Country id for -submit")
	language    = flag.String("lang", "fr", "Language code for -submit")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Scribe version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("scribe.toml"); err == nil {
			configFiles = append(configFiles, "scribe.toml")
		} else if _, err := os.Stat("deployments/local/scribe.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/scribe.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	common.ApplyFlagOverrides(config, *limit)

	logger := common.SetupLogger(config)
	common.PrintBanner(config, logger)

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, application, logger)
	stop()

	if closeErr := application.Close(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("Shutdown incomplete")
	}
	if err != nil {
		logger.Error().Err(err).Msg("Scribe stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, logger arbor.ILogger) error {
	switch {
	case *submit != "":
		title, err := application.TitleService.Submit(ctx, titles.SubmitInput{
			Title:        *submit,
			PlatformID:   *platformID,
			CountryID:    *countryID,
			LanguageCode: *language,
		})
		if err != nil {
			return err
		}
		fmt.Println(title.ID)
		return nil

	case *requeueID != "":
		return application.TitleService.Requeue(ctx, *requeueID)

	case *titleID != "":
		request, err := application.ProcessTitle(ctx, *titleID)
		if err != nil {
			return err
		}
		logger.Info().
			Str("title_id", *titleID).
			Str("request_id", request.ID).
			Str("article_id", request.ArticleID).
			Float64("cost", request.Cost).
			Msg("Title processed")
		return nil

	case *once:
		result, err := application.ProcessOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d/%d titles completed\n", result.Completed, result.Selected)
		return nil

	default:
		logger.Info().Str("schedule", application.Config.Queue.Schedule).Msg("Scribe running - Press Ctrl+C to stop")
		return application.Run(ctx)
	}
}
