package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"backoffice-access/config"
	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"backoffice-access/core/rbac"
	"github.com/spf13/cobra"
)

type options struct {
	catalogPath string
	modules     string
	summary     bool
	permissions bool
}

// NewRootCommand builds the backofficectl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "backofficectl",
		Short:         "Inspect the back-office module catalog and access trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", "", "Path to a YAML module catalog (overrides configuration)")
	root.PersistentFlags().StringVarP(&opts.modules, "modules", "m", "", "Comma separated allow-list of module keys")

	root.AddCommand(newCatalogCommand(opts))
	root.AddCommand(newProfileCommand(opts))
	root.AddCommand(newSummaryCommand(opts))
	root.AddCommand(newApplyCommand(opts))
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

func newCatalogCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the module catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, err := loadModules(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.permissions {
				for _, p := range rbac.AllPermissions(modules) {
					fmt.Fprintln(out, p)
				}
				return nil
			}
			for _, m := range modules {
				keys := make([]string, 0, len(m.SubModules))
				for _, s := range m.SubModules {
					keys = append(keys, s.Key)
				}
				fmt.Fprintf(out, "%-16s %-20s %s\n", m.Key, m.Name, strings.Join(keys, ","))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.permissions, "permissions", false, "Print every module.submodule.action grant instead")
	return cmd
}

func newProfileCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <id>",
		Short: "Apply a built-in profile to the catalog and print the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := access.ParseProfile(args[0])
			if err != nil {
				return fmt.Errorf("profile %q: %w", args[0], err)
			}
			modules, err := loadModules(opts)
			if err != nil {
				return err
			}
			tree := access.ApplyProfile(id, modules)
			if opts.summary {
				return writeSummary(cmd.OutOrStdout(), tree)
			}
			return writeJSON(cmd.OutOrStdout(), tree)
		},
	}
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print the access summary instead of the tree")
	return cmd
}

func newSummaryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <tree.json>",
		Short: "Summarize a saved access tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(args[0])
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), access.Normalize(tree))
		},
	}
}

func newApplyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <tree.json> <commands.json>",
		Short: "Apply a JSON array of commands to a tree and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, err := loadModules(opts)
			if err != nil {
				return err
			}
			tree, err := readTree(args[0])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read commands: %w", err)
			}
			var envelopes []json.RawMessage
			if err := json.Unmarshal(raw, &envelopes); err != nil {
				return fmt.Errorf("parse commands: %w", err)
			}
			cmds := make([]access.Command, 0, len(envelopes))
			for i, env := range envelopes {
				c, err := access.DecodeCommand(env)
				if err != nil {
					return fmt.Errorf("command %d: %w", i, err)
				}
				cmds = append(cmds, c)
			}
			tree = access.ApplyAll(access.Restrict(access.Normalize(tree), modules), modules, cmds...)
			return writeJSON(cmd.OutOrStdout(), access.SortByCatalog(tree, modules))
		},
	}
}

func loadModules(opts *options) ([]access.ModuleDefinition, error) {
	path := strings.TrimSpace(opts.catalogPath)
	var allowed []string
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		path = cfg.Catalog.Path
		allowed = cfg.Catalog.AvailableModules
	}
	reg, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	reg = reg.Scoped(allowed)
	return reg.Filter(catalog.SplitKeys(opts.modules)), nil
}

func readTree(path string) (access.Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	var tree access.Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}
	return tree, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummary(w io.Writer, tree access.Tree) error {
	sum := access.Summarize(tree)
	fmt.Fprintf(w, "modules: %d/%d enabled\n", sum.EnabledModules, sum.TotalModules)
	for _, m := range sum.Modules {
		state := "off"
		if m.Enabled {
			state = "on"
		}
		fmt.Fprintf(w, "  %-16s %-3s submodules=%d/%d permissions=%d\n", m.Key, state, m.EnabledSubModules, m.TotalSubModules, m.ActivePermissions)
	}
	parts := make([]string, 0, len(sum.ByType))
	for _, k := range access.PermissionKinds() {
		parts = append(parts, fmt.Sprintf("%s=%d", k, sum.ByType[k]))
	}
	_, err := fmt.Fprintf(w, "by type: %s\n", strings.Join(parts, " "))
	return err
}
