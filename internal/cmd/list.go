package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"ramos/internal/domain"
)

// ListCmd prints the enriched branch list without starting the TUI
type ListCmd struct {
	Repo   string `arg:"" optional:"" help:"Repository as owner/name or URL (default: origin remote of the current directory)"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (l *ListCmd) Run(cli *CLI) error {
	ref, err := refFor(l.Repo)
	if err != nil {
		return err
	}

	data, err := cli.Container.Branches.FullBranchData(context.Background(), ref)
	if err != nil {
		return fmt.Errorf("failed to fetch branches for %s: %w", ref, err)
	}

	if l.Format == "json" {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if data.Branches == nil {
		fmt.Printf("%s: no active branches\n", ref)
		return nil
	}

	defaultBranch := ""
	if data.DefaultBranch != nil {
		defaultBranch = *data.DefaultBranch
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BRANCH\tAUTHOR\tDATE\tAHEAD/BEHIND\tPULL REQUEST")
	for _, branch := range data.Branches {
		name := branch.Name
		if name == defaultBranch {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t+%d/-%d\t%s\n",
			name,
			branch.Author.Login,
			branch.AuthoredDate,
			branch.AheadBehind.Ahead(),
			branch.AheadBehind.Behind(),
			formatPullRequest(branch.PullRequest),
		)
	}
	return w.Flush()
}

func formatPullRequest(pr *domain.PullRequest) string {
	if pr == nil {
		return "-"
	}
	switch {
	case pr.Merged:
		return fmt.Sprintf("#%d merged", pr.Number)
	case pr.State == domain.PRStateClosed:
		return fmt.Sprintf("#%d closed", pr.Number)
	case pr.ReviewableState == domain.ReviewStateDraft:
		return fmt.Sprintf("#%d draft", pr.Number)
	default:
		return fmt.Sprintf("#%d open", pr.Number)
	}
}
