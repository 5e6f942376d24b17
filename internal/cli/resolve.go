package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tierdocs/internal/generate"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <target> [project_path]",
	Short: "Print the merged documentation of one target",
	Long: `Resolve merges every target info document whose pattern matches <target>
and prints the result as YAML, followed by the contributing patterns.

The fact provider is not consulted, so any target name can be tried.
Use it to find out which documents set a field when generate reports a
conflict.

Examples:
  tierdocs resolve x86_64-unknown-linux-gnu
  tierdocs resolve aarch64-apple-darwin ./book`,
	Args: RequireTargetName,
	RunE: runResolve,
}

var listCmd = &cobra.Command{
	Use:   "list [project_path]",
	Short: "List targets with their tier and matching patterns",
	Long: `List resolves every target reported by the fact provider and prints one
line per target: name, tier and the patterns that match it.

Examples:
  tierdocs list
  tierdocs list --match '*-linux-*'
  tierdocs list --facts facts.yaml --match 'riscv*'`,
	Args: OptionalProjectPath,
	RunE: runList,
}

var (
	resolveFlags runFlagValues
	listFlags    runFlagValues
	listMatch    string
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(listCmd)
	addRunFlags(resolveCmd, &resolveFlags)
	addRunFlags(listCmd, &listFlags)

	listCmd.Flags().StringVar(&listMatch, "match", "",
		"Only list targets whose name matches this glob\n"+
			"Example: --match 'x86_64-*'")
}

// resolvedTarget is the YAML document printed by resolve.
type resolvedTarget struct {
	tierdocs.TargetDocs `yaml:",inline"`
	Patterns            []string `yaml:"patterns"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	target := args[0]
	s, err := newSession(cmd, projectArg(args, 1), &resolveFlags)
	if err != nil {
		return err
	}

	res, err := s.generator.Resolve(s.config, target)
	if err != nil {
		return err
	}
	return writeResolution(cmd.OutOrStdout(), res)
}

func writeResolution(w io.Writer, res *generate.Resolution) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(resolvedTarget{TargetDocs: *res.Docs, Patterns: res.Patterns}); err != nil {
		return fmt.Errorf("encoding %s: %w", res.Docs.Name, err)
	}
	return encoder.Close()
}

func runList(cmd *cobra.Command, args []string) error {
	if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
		return fmt.Errorf("invalid --match pattern %q: %w", listMatch, tierdocs.ErrUsage)
	}

	s, err := newSession(cmd, projectArg(args, 0), &listFlags)
	if err != nil {
		return err
	}

	ctx, cancel := runContext(s.settings.Timeout)
	defer cancel()

	resolutions, err := s.generator.List(ctx, s.config)
	if err != nil {
		return wrapTimeout(ctx, err, s.settings.Timeout)
	}

	return writeList(cmd.OutOrStdout(), filterResolutions(resolutions, listMatch))
}

func filterResolutions(resolutions []*generate.Resolution, match string) []*generate.Resolution {
	if match == "" {
		return resolutions
	}
	var kept []*generate.Resolution
	for _, r := range resolutions {
		if ok, _ := doublestar.Match(match, r.Docs.Name); ok {
			kept = append(kept, r)
		}
	}
	return kept
}

func writeList(w io.Writer, resolutions []*generate.Resolution) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tTIER\tPATTERNS")
	for _, r := range resolutions {
		patterns := strings.Join(r.Patterns, ", ")
		if patterns == "" {
			patterns = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Docs.Name, tierdocs.TierLabel(r.Docs.Tier), patterns)
	}
	return tw.Flush()
}
