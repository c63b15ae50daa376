package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/app"
	"github.com/kapu/reeltalk-go/internal/command"
	"github.com/kapu/reeltalk-go/internal/config"
	"github.com/kapu/reeltalk-go/internal/util"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "reeltalk",
		Short:         "ReelTalk movie recommendations from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	forYouCmd := &cobra.Command{
		Use:   "foryou",
		Short: "Personalized recommendations (stored preference unless --lang/--genre are given)",
		Args:  cobra.NoArgs,
		RunE:  runRegistered("foryou"),
	}
	addPreferenceFlags(forYouCmd)
	forYouCmd.Flags().Bool("refresh", false, "Drop cached catalog pages before fetching")

	trendingCmd := &cobra.Command{
		Use:   "trending",
		Short: "Trending movies",
		Args:  cobra.NoArgs,
		RunE:  runRegistered("trending"),
	}

	onboardCmd := &cobra.Command{
		Use:   "onboard",
		Short: "Browse onboarding candidates for a language/genre selection",
		Args:  cobra.NoArgs,
		RunE:  runRegistered("onboard"),
	}
	addPreferenceFlags(onboardCmd)
	onboardCmd.Flags().Int("page", 1, "Result page to show")
	onboardCmd.Flags().Bool("refresh", false, "Drop cached catalog pages before fetching")

	completeCmd := &cobra.Command{
		Use:   "complete",
		Short: "Complete onboarding with favorites picked from the candidate list",
		Args:  cobra.NoArgs,
		RunE:  runRegistered("complete"),
	}
	addPreferenceFlags(completeCmd)
	completeCmd.Flags().IntSlice("pick", nil, "Movie ids to save as favorites (up to 5)")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by title",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRegistered("search"),
	}
	searchCmd.Flags().Int("page", 1, "Result page to show")

	genresCmd := &cobra.Command{
		Use:   "genres",
		Short: "List selectable genres and languages",
		Args:  cobra.NoArgs,
		RunE:  runRegistered("genres"),
	}

	rootCmd.AddCommand(forYouCmd, trendingCmd, onboardCmd, completeCmd, searchCmd, genresCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, app.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func addPreferenceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("lang", nil, "Original language codes, in priority order (e.g. ko,en)")
	cmd.Flags().StringSlice("genre", nil, "Genre names (e.g. Drama,Comedy)")
}

func runRegistered(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err := util.NewLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		container, err := app.Build(ctx, cfg, logger, app.Output{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			logger.Error("Failed to assemble application services", zap.Error(err))
			return err
		}
		defer container.Close()

		params := flagParams(cmd, args)
		logger.Debug("Running command", zap.String("command", name), zap.Any("params", params))

		return container.Execute(ctx, name, params)
	}
}

func flagParams(cmd *cobra.Command, args []string) map[string]any {
	params := make(map[string]any)
	flags := cmd.Flags()

	if flags.Lookup("lang") != nil {
		langs, _ := flags.GetStringSlice("lang")
		params[command.ParamLanguages] = langs
	}
	if flags.Lookup("genre") != nil {
		genres, _ := flags.GetStringSlice("genre")
		params[command.ParamGenres] = genres
	}
	if flags.Lookup("page") != nil {
		page, _ := flags.GetInt("page")
		params[command.ParamPage] = page
	}
	if flags.Lookup("pick") != nil {
		picks, _ := flags.GetIntSlice("pick")
		params[command.ParamPicks] = picks
	}
	if flags.Lookup("refresh") != nil {
		refresh, _ := flags.GetBool("refresh")
		params[command.ParamRefresh] = refresh
	}
	if len(args) > 0 {
		params[command.ParamQuery] = strings.Join(args, " ")
	}

	return params
}
