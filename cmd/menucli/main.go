package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/menucli/internal/apps"
	"github.com/yourusername/menucli/internal/ax"
	"github.com/yourusername/menucli/internal/config"
	"github.com/yourusername/menucli/internal/logging"
	"github.com/yourusername/menucli/internal/menu"
	"github.com/yourusername/menucli/internal/models"
	"github.com/yourusername/menucli/internal/output"
)

var (
	appFlag     string
	outputFlag  string
	jsonOutput  bool
	fieldsFlag  string
	noHeader    bool
	limitFlag   int
	exactFlag   bool
	dryRun      bool
	flatFlag    bool
	treeFlag    bool
	extrasFlag  bool
	alternates  bool
	enabledOnly bool
	depthFlag   int
	timeoutFlag time.Duration
	noColor     bool
	debugMode   bool

	cfg *config.Config

	// Color functions
	errorColor = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgCyan)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "menucli",
	Short: "Query and interact with macOS app menu bars",
	Long: `menucli exposes the menu bar of any running application as a
scriptable data source. It can list, search, click and toggle menu
items — including status-bar extras and Option-key alternates —
addressed by fuzzy query or exact "File::Save As…" path.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			logging.Warn().Err(err).Msg("ignoring invalid config")
			cfg = &config.Config{Limit: 10}
		}
		applyConfigDefaults(cmd)
		if debugMode {
			logging.SetDebug()
		}
		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

// applyConfigDefaults fills flags the user did not set from the config
// file. Flags always win.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("output") && cfg.Output != "" {
		outputFlag = cfg.Output
	}
	if !flags.Changed("limit") && cfg.Limit > 0 {
		limitFlag = cfg.Limit
	}
	if !flags.Changed("alternates") && cfg.Alternates {
		alternates = true
	}
	if !flags.Changed("depth") && cfg.Depth > 0 {
		depthFlag = cfg.Depth
	}
	if !flags.Changed("timeout") && cfg.Timeout > 0 {
		timeoutFlag = cfg.Timeout
	}
}

// listCmd lists menu items
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List menu items for an application",
	Long: `Lists the full menu tree of the target application, flat by
default (one "::"-joined path per item) or nested with --tree.
With --extras and no --app, lists status-bar extras across all
running applications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := walkContext()
		defer cancel()
		out := outCtx()

		if extrasFlag && appFlag == "" {
			return listAllExtras(ctx, out)
		}

		app, err := resolveApp()
		if err != nil {
			return err
		}

		res, err := buildTree(ctx, app.PID)
		if err != nil {
			return err
		}
		reportPartial(res)

		if treeFlag && !flatFlag {
			return out.WriteTree([]models.TreeRecord{models.FromNode(&res.Root)})
		}

		items := menu.Flatten(&res.Root)
		if enabledOnly {
			items = filterEnabled(items)
		}
		return out.WriteItems(models.FromFlatItems(items))
	},
}

func listAllExtras(ctx context.Context, out *output.Ctx) error {
	defer timer("build_all_extras")()
	trees := menu.BuildAllExtras(ctx, ax.Source{}, runningApps(), buildOptions())

	var items []menu.FlatItem
	for _, et := range trees {
		for _, it := range menu.Flatten(&et.Tree.Root) {
			it.AppName = et.App.Name
			it.AppPID = et.App.PID
			items = append(items, it)
		}
	}
	if enabledOnly {
		items = filterEnabled(items)
	}
	return out.WriteItems(models.FromFlatItems(items))
}

// searchCmd fuzzy-searches menu items
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search menu items by fuzzy query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := walkContext()
		defer cancel()

		items, err := gatherItems(ctx)
		if err != nil {
			return err
		}

		defer timer("search")()
		matches, err := menu.Search(items, args[0], resolveOptions(), limitFlag)
		if err != nil {
			return err
		}

		results := make([]models.SearchRecord, len(matches))
		for i, m := range matches {
			results[i] = models.SearchRecord{
				ItemRecord: models.FromFlatItem(m.Item),
				Score:      m.Score,
			}
		}
		return outCtx().WriteSearch(results)
	},
}

// clickCmd presses a menu item
var clickCmd = &cobra.Command{
	Use:   "click <query>",
	Short: "Click (press) a menu item",
	Long: `Resolves the query to exactly one menu item and presses it.
With --dry-run the resolved item is reported without pressing.
Ambiguous queries fail with the candidate list; use --exact with a
full "Menu::Item" path to disambiguate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := walkContext()
		defer cancel()

		app, item, err := resolveItem(ctx, args[0])
		if err != nil {
			return err
		}

		if !dryRun {
			defer timer("press")()
			act := actuator()
			if err := act.Press(ctx, app.PID, item.Path); err != nil {
				return err
			}
			logging.Info().Str("path", item.Path).Str("app", app.Name).Msg("pressed")
		}
		return outCtx().WriteItems([]models.ItemRecord{models.FromFlatItem(*item)})
	},
}

// toggleCmd toggles a checkmark item and verifies the flip
var toggleCmd = &cobra.Command{
	Use:   "toggle <query>",
	Short: "Toggle a checkmark menu item and report the new state",
	Long: `Presses the resolved item, then re-reads its checked state with
bounded backoff until it changes. A state that does not flip within
the backoff budget is reported as-is: the press still succeeded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := walkContext()
		defer cancel()

		app, item, err := resolveItem(ctx, args[0])
		if err != nil {
			return err
		}

		before := item.Checked
		if dryRun {
			return outCtx().WriteToggle(models.ToggleRecord{
				Path:          item.Path,
				CheckedBefore: string(before),
				CheckedAfter:  string(before),
				DryRun:        true,
			})
		}

		act := actuator()
		if err := act.Press(ctx, app.PID, item.Path); err != nil {
			return err
		}

		defer timer("verify")()
		after := act.VerifyToggle(ctx, app.PID, item.Path, before)
		logging.Info().Str("path", item.Path).
			Str("before", string(before)).Str("after", string(after)).
			Msg("toggled")

		return outCtx().WriteToggle(models.ToggleRecord{
			Path:          item.Path,
			CheckedBefore: string(before),
			CheckedAfter:  string(after),
			Verified:      after != before,
		})
	},
}

// stateCmd reports the current state of one menu item
var stateCmd = &cobra.Command{
	Use:   "state <query>",
	Short: "Get the current state of a menu item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := walkContext()
		defer cancel()

		_, item, err := resolveItem(ctx, args[0])
		if err != nil {
			return err
		}
		return outCtx().WriteItems([]models.ItemRecord{models.FromFlatItem(*item)})
	},
}

// appsCmd lists running applications
var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List running applications with their PIDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		frontmostOnly, _ := cmd.Flags().GetBool("frontmost")

		list := runningApps()
		records := make([]models.AppRecord, 0, len(list))
		for _, a := range list {
			if frontmostOnly && !a.Frontmost {
				continue
			}
			records = append(records, models.AppRecord{
				Name:      a.Name,
				PID:       a.PID,
				BundleID:  a.BundleID,
				Frontmost: a.Frontmost,
			})
		}
		return outCtx().WriteApps(records)
	},
}

// checkAccessCmd verifies the Accessibility permission
var checkAccessCmd = &cobra.Command{
	Use:   "check-access",
	Short: "Check if Accessibility permission is granted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ax.Trusted() {
			if !outCtx().IsJSON() {
				fmt.Fprintln(os.Stderr, ax.PermissionInstructions)
			}
			return menu.Errf(menu.KindPermissionDenied, "accessibility permission not granted")
		}
		out := outCtx()
		if out.IsJSON() {
			fmt.Println(`{"ok":true,"message":"accessibility permission granted"}`)
			return nil
		}
		infoColor.Println("Accessibility permission granted.")
		return nil
	},
}

// Helpers

func runningApps() []menu.App {
	defer timer("list_apps")()
	list := apps.List()
	out := make([]menu.App, len(list))
	for i, a := range list {
		out[i] = menu.App{Name: a.Name, PID: a.PID}
	}
	return out
}

// resolveApp maps --app (or the frontmost fallback) to a running app.
func resolveApp() (*apps.RunningApp, error) {
	defer timer("resolve_app")()
	app, err := apps.Resolve(apps.List(), appFlag)
	if err != nil {
		return nil, menu.Errf(menu.KindAppNotFound, "%v", err)
	}
	if !apps.Alive(app.PID) {
		return nil, menu.Errf(menu.KindAppNotFound, "no running process with pid %d", app.PID)
	}
	return app, nil
}

func buildOptions() menu.BuildOptions {
	depth := -1
	if depthFlag > 0 {
		depth = depthFlag
	}
	kind := menu.Standard
	if extrasFlag {
		kind = menu.Extras
	}
	return menu.BuildOptions{
		MaxDepth:          depth,
		IncludeAlternates: alternates,
		Kind:              kind,
	}
}

func buildTree(ctx context.Context, pid int) (*menu.BuildResult, error) {
	defer timer("build_tree")()
	res, err := menu.BuildTree(ctx, ax.Source{}, pid, buildOptions())
	if err != nil {
		return nil, classifyBuildErr(err)
	}
	return res, nil
}

// gatherItems builds and flattens the target tree(s) for query commands.
func gatherItems(ctx context.Context) ([]menu.FlatItem, error) {
	if extrasFlag && appFlag == "" {
		trees := menu.BuildAllExtras(ctx, ax.Source{}, runningApps(), buildOptions())
		var items []menu.FlatItem
		for _, et := range trees {
			for _, it := range menu.Flatten(&et.Tree.Root) {
				it.AppName = et.App.Name
				it.AppPID = et.App.PID
				items = append(items, it)
			}
		}
		return items, nil
	}

	app, err := resolveApp()
	if err != nil {
		return nil, err
	}
	res, err := buildTree(ctx, app.PID)
	if err != nil {
		return nil, err
	}
	reportPartial(res)
	return menu.Flatten(&res.Root), nil
}

// resolveItem builds the target tree(s) and resolves the query to
// exactly one item. For cross-app extras the owning app comes from the
// resolved item itself.
func resolveItem(ctx context.Context, query string) (*apps.RunningApp, *menu.FlatItem, error) {
	if extrasFlag && appFlag == "" {
		items, err := gatherItems(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer timer("resolve")()
		item, err := menu.Resolve(items, query, resolveOptions())
		if err != nil {
			return nil, nil, err
		}
		return &apps.RunningApp{Name: item.AppName, PID: item.AppPID}, item, nil
	}

	app, err := resolveApp()
	if err != nil {
		return nil, nil, err
	}

	res, err := buildTree(ctx, app.PID)
	if err != nil {
		return nil, nil, err
	}
	reportPartial(res)

	defer timer("resolve")()
	item, err := menu.Resolve(menu.Flatten(&res.Root), query, resolveOptions())
	if err != nil {
		return nil, nil, err
	}
	return app, item, nil
}

func resolveOptions() menu.ResolveOptions {
	return menu.ResolveOptions{Exact: exactFlag, EnabledOnly: enabledOnly}
}

func actuator() *menu.Actuator {
	kind := menu.Standard
	if extrasFlag {
		kind = menu.Extras
	}
	return &menu.Actuator{Src: ax.Source{}, Kind: kind}
}

func walkContext() (context.Context, context.CancelFunc) {
	if timeoutFlag > 0 {
		return context.WithTimeout(context.Background(), timeoutFlag)
	}
	return context.WithCancel(context.Background())
}

func reportPartial(res *menu.BuildResult) {
	if res.Partial {
		fmt.Fprintln(os.Stderr, "warning: walk deadline expired; results are partial")
	}
}

// classifyBuildErr maps facade sentinels to the typed domain error.
func classifyBuildErr(err error) error {
	switch {
	case errors.Is(err, menu.ErrNotAuthorized):
		return menu.Errf(menu.KindPermissionDenied, "accessibility permission not granted")
	case errors.Is(err, menu.ErrUnsupported):
		return menu.Errf(menu.KindUnsupported, "menu bar not available: %v", err)
	default:
		return menu.WrapAX("menu walk failed", err)
	}
}

func filterEnabled(items []menu.FlatItem) []menu.FlatItem {
	out := items[:0]
	for _, it := range items {
		if it.Enabled {
			out = append(out, it)
		}
	}
	return out
}

func outCtx() *output.Ctx {
	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		format = output.Auto
	}
	var fields []string
	if fieldsFlag != "" {
		for _, f := range strings.Split(fieldsFlag, ",") {
			fields = append(fields, strings.TrimSpace(f))
		}
	}
	return output.NewCtx(format, jsonOutput, fields, noHeader)
}

// timer prints a phase duration to stderr when --debug is set.
func timer(label string) func() {
	if !debugMode {
		return func() {}
	}
	start := time.Now()
	return func() {
		fmt.Fprintf(os.Stderr, "[debug] %s: %s\n", label, time.Since(start))
	}
}

func printError(err error) {
	out := outCtx()
	rec := models.FromError(err)
	if out.IsJSON() {
		out.WriteError(rec)
		return
	}
	errorColor.Fprint(os.Stderr, "✗ Error: ")
	fmt.Fprintln(os.Stderr, rec.Message)
	for _, c := range rec.Candidates {
		fmt.Fprintln(os.Stderr, "  "+c)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&appFlag, "app", "", "Target application: name, PID, or bundle ID (default: frontmost)")
	pf.StringVar(&outputFlag, "output", "auto", "Output format: json|compact|ndjson|table|path|id|auto")
	pf.BoolVar(&jsonOutput, "json", false, "Shorthand for --output json")
	pf.StringVar(&fieldsFlag, "fields", "", "Comma-separated field names to include in output")
	pf.BoolVar(&noHeader, "no-header", false, "Omit table headers")
	pf.IntVar(&limitFlag, "limit", 10, "Maximum number of search results")
	pf.BoolVar(&exactFlag, "exact", false, "Require an exact full-path match")
	pf.BoolVar(&dryRun, "dry-run", false, "Resolve the item but do not press it")
	pf.BoolVar(&flatFlag, "flat", false, "Flat list output with full path notation")
	pf.BoolVar(&treeFlag, "tree", false, "Nested tree output")
	pf.BoolVar(&extrasFlag, "extras", false, "Target the status-bar extras instead of the menu bar")
	pf.BoolVar(&alternates, "alternates", false, "Include Option-key alternate items")
	pf.BoolVar(&enabledOnly, "enabled-only", false, "Only include enabled (clickable) items")
	pf.IntVar(&depthFlag, "depth", 0, "Maximum menu nesting depth (0 = unlimited)")
	pf.DurationVar(&timeoutFlag, "timeout", 0, "Per-walk deadline (0 = none)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&debugMode, "debug", false, "Print phase timings to stderr")

	appsCmd.Flags().Bool("frontmost", false, "Show only the frontmost application")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(checkAccessCmd)
}

func main() {
	// Initialize logging
	logging.Init()
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		logging.Close()
		os.Exit(menu.AsError(err).ExitCode())
	}
}
