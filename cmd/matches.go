package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/records"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Inspect and update persisted matches",
}

var matchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the matches of a profile as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		listMatches(cmd)
	},
}

var matchesStatusCmd = &cobra.Command{
	Use:   "set-status <match-id> <pending|offer_sent|accepted|rejected>",
	Short: "Move a match to another status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setMatchStatus(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)
	matchesCmd.AddCommand(matchesListCmd, matchesStatusCmd)

	matchesListCmd.Flags().StringP("profile", "p", "", "id of the ideal profile")
	matchesListCmd.Flags().StringP("kind", "k", string(records.KindCandidate), "profile kind: candidate or vacancy")
	matchesListCmd.MarkFlagRequired("profile")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func listMatches(cmd *cobra.Command) {
	ctx := commandContext(cmd)
	e := setup()

	profileID, _ := cmd.Flags().GetString("profile")
	kind, _ := cmd.Flags().GetString("kind")
	if kind != string(records.KindCandidate) && kind != string(records.KindVacancy) {
		e.logger.Fatal("invalid profile kind", zap.String("kind", kind))
	}

	db := e.openStore(ctx)
	defer db.Close()

	matches, err := db.Matches(ctx, records.ProfileKind(kind), profileID)
	if err != nil {
		e.logger.Fatal("listing matches", zap.Error(err))
	}

	if err := printJSON(matches); err != nil {
		e.logger.Fatal("printing matches", zap.Error(err))
	}
}

func setMatchStatus(cmd *cobra.Command, id, value string) {
	ctx := commandContext(cmd)
	e := setup()

	status, ok := records.ParseStatus(value)
	if !ok {
		e.logger.Fatal("invalid status", zap.String("status", value))
	}

	db := e.openStore(ctx)
	defer db.Close()

	if err := db.UpdateMatchStatus(ctx, id, status); err != nil {
		e.logger.Fatal("updating match status", zap.Error(fmt.Errorf("match %s: %w", id, err)))
	}
	e.logger.Info("match status updated", zap.String("match_id", id), zap.String("status", string(status)))
}
