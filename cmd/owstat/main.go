// Package main provides the CLI entrypoint for owstat.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/chart"
	"github.com/verte-zerg/owstat/internal/config"
	"github.com/verte-zerg/owstat/internal/dataset"
	"github.com/verte-zerg/owstat/internal/model"
	"github.com/verte-zerg/owstat/internal/profile"
	"github.com/verte-zerg/owstat/internal/roster"
	"github.com/verte-zerg/owstat/internal/statpath"
	"github.com/verte-zerg/owstat/internal/tui"
)

const (
	defaultPlatform    = "pc"
	defaultRegion      = "us"
	defaultMode        = "quickplay"
	defaultMinPlaytime = dataset.DefaultMinPlaytimeSeconds
)

var (
	rootPlatform    string
	rootRegion      string
	rootMinPlaytime int

	fetchTag      string
	fetchPlatform string
	fetchRegion   string

	refTag      string
	refPlatform string
	refRegion   string

	chartTags        []string
	chartHeroes      []string
	chartStat        string
	chartOption      string
	chartMode        string
	chartMinPlaytime int
	chartWidth       int
	chartAsTable     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "owstat",
		Short:         "Terminal Overwatch stats comparison",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.Flags().StringVar(&rootPlatform, "platform", defaultPlatform, "default platform for new players")
	rootCmd.Flags().StringVar(&rootRegion, "region", defaultRegion, "default region for new players")
	rootCmd.Flags().IntVar(&rootMinPlaytime, "min-playtime", defaultMinPlaytime, "playtime threshold in seconds for the X marker")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newRefCmd())
	rootCmd.AddCommand(newChartCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "platform", &rootPlatform, fileCfg.Account.Platform)
	applyStringConfig(cmd, "region", &rootRegion, fileCfg.Account.Region)
	applyIntConfig(cmd, "min-playtime", &rootMinPlaytime, fileCfg.Chart.MinPlaytime)

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	st, err := profile.OpenStore(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := tui.NewModel(tui.Options{
		Store:           st,
		Retriever:       profile.NewRetriever(st, profile.NewClient()),
		Catalog:         cat,
		MinPlaytime:     rootMinPlaytime,
		DefaultPlatform: rootPlatform,
		DefaultRegion:   rootRegion,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	refPath := config.DefaultReferencePath()
	doc, err := catalog.LoadFile(refPath)
	if err != nil {
		lines := []string{
			fmt.Sprintf("%v", err),
			fmt.Sprintf("expected reference data at: %s", refPath),
			"The reference document is any complete profile with high playtime;",
			"install one with: owstat ref --tag <battletag>",
		}
		return nil, fmt.Errorf("%s", strings.Join(lines, "\n"))
	}
	return catalog.New(doc), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List saved players",
		Args:  cobra.NoArgs,
		RunE:  runPlayersCmd,
	}
}

func runPlayersCmd(cmd *cobra.Command, _ []string) error {
	st, err := profile.OpenStore(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	players, err := st.ListPlayers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	if len(players) == 0 {
		logErrln("No saved players. Add one with: owstat fetch --tag <battletag>")
		return nil
	}
	for _, p := range players {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s/%s)\n", p.Tag, p.Platform, p.Region); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and cache a player profile",
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchTag, "tag", "", "battletag (e.g. Clovis-1467)")
	cmd.Flags().StringVar(&fetchPlatform, "platform", defaultPlatform, "platform (pc, etc)")
	cmd.Flags().StringVar(&fetchRegion, "region", defaultRegion, "region (us, eu, asia)")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "platform", &fetchPlatform, fileCfg.Account.Platform)
	applyStringConfig(cmd, "region", &fetchRegion, fileCfg.Account.Region)
	if fetchTag == "" {
		return fmt.Errorf("--tag is required")
	}

	st, err := profile.OpenStore(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	player := model.Player{Tag: fetchTag, Platform: fetchPlatform, Region: fetchRegion}
	logErrf("Fetching profile for %s...\n", player.Tag)
	doc, source, err := profile.NewRetriever(st, profile.NewClient()).Get(ctx, player)
	if err != nil {
		return err
	}
	if err := st.SavePlayer(ctx, player); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	logErrf("Loaded %s from %s (%d top-level keys)\n", player.Tag, source, len(doc))
	return nil
}

func newRefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Install a profile as the stat-menu reference document",
		RunE:  runRefCmd,
	}
	cmd.Flags().StringVar(&refTag, "tag", "", "battletag of a high-playtime profile")
	cmd.Flags().StringVar(&refPlatform, "platform", defaultPlatform, "platform (pc, etc)")
	cmd.Flags().StringVar(&refRegion, "region", defaultRegion, "region (us, eu, asia)")
	return cmd
}

func runRefCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "platform", &refPlatform, fileCfg.Account.Platform)
	applyStringConfig(cmd, "region", &refRegion, fileCfg.Account.Region)
	if refTag == "" {
		return fmt.Errorf("--tag is required")
	}

	ctx := context.Background()
	player := model.Player{Tag: refTag, Platform: refPlatform, Region: refRegion}
	logErrf("Fetching reference profile for %s...\n", player.Tag)
	doc, err := profile.NewClient().Fetch(ctx, player)
	if err != nil {
		return err
	}

	path := config.DefaultReferencePath()
	if err := writeReference(path, doc); err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw a chart without the TUI",
		RunE:  runChartCmd,
	}
	cmd.Flags().StringSliceVar(&chartTags, "tag", nil, "battletag, repeatable")
	cmd.Flags().StringSliceVar(&chartHeroes, "hero", nil, "hero display name, repeatable")
	cmd.Flags().StringVar(&chartStat, "stat", "", "stat name (e.g. eliminationsAvgPer10Min)")
	cmd.Flags().StringVar(&chartOption, "option", "average", "menu option (assists, average, best, ...)")
	cmd.Flags().StringVar(&chartMode, "mode", defaultMode, "quickplay or competitive")
	cmd.Flags().IntVar(&chartMinPlaytime, "min-playtime", defaultMinPlaytime, "playtime threshold in seconds for the X marker")
	cmd.Flags().IntVar(&chartWidth, "width", 0, "chart width (default: terminal width)")
	cmd.Flags().BoolVar(&chartAsTable, "table", false, "print the dataset as a table instead of bars")
	return cmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &chartMode, fileCfg.Chart.Mode)
	applyIntConfig(cmd, "min-playtime", &chartMinPlaytime, fileCfg.Chart.MinPlaytime)
	applyIntConfig(cmd, "width", &chartWidth, fileCfg.Chart.Width)

	if len(chartTags) == 0 {
		return fmt.Errorf("--tag is required at least once")
	}
	if len(chartHeroes) == 0 {
		return fmt.Errorf("--hero is required at least once")
	}
	if chartStat == "" {
		return fmt.Errorf("--stat is required")
	}

	heroes := make([]string, 0, len(chartHeroes))
	apiKeys := make([]string, 0, len(chartHeroes))
	for _, hero := range chartHeroes {
		name, ok := roster.DisplayName(hero)
		if !ok {
			return fmt.Errorf("unknown hero %q", hero)
		}
		heroes = append(heroes, name)
		key, _ := roster.APIName(name)
		apiKeys = append(apiKeys, key)
	}

	path := statpath.New()
	mode, ok := resolveMode(chartMode)
	if !ok {
		return fmt.Errorf("unknown mode %q (use quickplay or competitive)", chartMode)
	}
	path.SetMode(mode)
	path.SetHeroSelection(apiKeys)
	if !path.SetOption(chartOption) {
		return fmt.Errorf("unknown option %q (valid: %s)", chartOption, strings.Join(catalog.MenuOptionsFor(1), ", "))
	}
	path.SetStat(chartStat)

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	if names, ok := cat.StatNamesFor(path.Option(), path.Hero()); ok && !containsString(names, chartStat) {
		logErrf("stat %q not found under %s in the reference data; chart may be all zeros\n", chartStat, path.Option())
	}

	st, err := profile.OpenStore(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	retriever := profile.NewRetriever(st, profile.NewClient())
	players := make([]model.Player, 0, len(chartTags))
	docs := map[string]catalog.Document{}
	for _, tag := range chartTags {
		player, err := resolvePlayer(ctx, st, tag)
		if err != nil {
			return err
		}
		doc, source, err := retriever.Get(ctx, player)
		if err != nil {
			return err
		}
		logErrf("%s: loaded from %s\n", player.Tag, source)
		players = append(players, player)
		docs[player.Tag] = doc
	}

	ds := dataset.Build(players, docs, heroes, path, chartMinPlaytime)
	for _, warning := range ds.Warnings {
		logErrf("warning: %s\n", warning)
	}
	if chartAsTable {
		return chart.RenderTable(cmd.OutOrStdout(), ds)
	}
	return chart.Render(cmd.OutOrStdout(), ds, chartWidth)
}

func resolvePlayer(ctx context.Context, st *profile.Store, tag string) (model.Player, error) {
	players, err := st.ListPlayers(ctx)
	if err != nil {
		return model.Player{}, fmt.Errorf("failed to list players: %w", err)
	}
	for _, p := range players {
		if strings.EqualFold(p.Tag, tag) {
			return p, nil
		}
	}
	return model.Player{Tag: tag, Platform: defaultPlatform, Region: defaultRegion}, nil
}

func resolveMode(mode string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "quickplay", "qp", catalog.ModeQuickplay:
		return catalog.ModeQuickplay, true
	case "competitive", "comp", catalog.ModeCompetitive:
		return catalog.ModeCompetitive, true
	default:
		return "", false
	}
}

func writeReference(path string, doc catalog.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create reference dir: %w", err)
	}
	payload, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "reference-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp reference: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("failed to write reference: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close reference: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write reference: %w", err)
	}
	return nil
}

func marshalDocument(doc catalog.Document) ([]byte, error) {
	payload, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode reference: %w", err)
	}
	return append(payload, '\n'), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func containsString(items []string, needle string) bool {
	for _, item := range items {
		if item == needle {
			return true
		}
	}
	return false
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# owstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[account]
# platform = %q          # Default platform for new players
# region = %q            # Default region for new players

[chart]
# mode = %q       # Default mode (quickplay or competitive)
# min-playtime = %d   # Seconds of playtime below which rows are marked X
# width = 0             # Chart width (0: terminal width)
`,
		defaultPlatform,
		defaultRegion,
		defaultMode,
		defaultMinPlaytime,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
