package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archguard/archguard/internal/archguard/config"
	"github.com/archguard/archguard/internal/archguard/policy"
	"github.com/archguard/archguard/internal/archguard/validate"
)

func newCheckCmd() *cobra.Command {
	var (
		singleFile bool
		strict     bool
		asJSON     bool
		ruleSet    string
		deps       bool
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Run the validators once and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			logger := newLogger()

			root := path
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				root = filepath.Dir(path)
			}
			cfg, err := config.LoadConfig(root)
			if err != nil {
				c := config.DefaultConfig
				cfg = &c
			}

			validator := validate.New(cfg, policy.NewCache(logger), logger)

			ctx := cmd.Context()
			rep, err := validator.Validate(ctx, path, validate.Options{
				SingleFile: singleFile,
				Strict:     strict,
				RuleSet:    validate.RuleSet(ruleSet),
			})
			if err != nil {
				return err
			}

			if deps {
				depRep, err := validator.ValidateDependencies(ctx, root)
				if err != nil {
					return err
				}
				rep.Errors = append(rep.Errors, depRep.Errors...)
				rep.Warnings = append(rep.Warnings, depRep.Warnings...)
				rep.Success = rep.Success && depRep.Success
			}

			if asJSON {
				out, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			} else {
				for _, f := range rep.Errors {
					fmt.Printf("error   %s\n", f.String())
				}
				for _, f := range rep.Warnings {
					fmt.Printf("warning %s\n", f.String())
				}
				fmt.Println(rep.Summary)
			}

			if !rep.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&singleFile, "file", false, "treat the path as a single file")
	cmd.Flags().BoolVar(&strict, "strict", false, "CI-strict mode: treat warnings as errors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().StringVar(&ruleSet, "rules", "all", "rule families to run (all, architecture, style)")
	cmd.Flags().BoolVar(&deps, "deps", false, "also check the manifest against the dependency policy")
	return cmd
}
