package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/filtering"
	"github.com/spigell/profile-matcher/internal/logger"
	"github.com/spigell/profile-matcher/internal/search"
	"github.com/spigell/profile-matcher/internal/store"
)

const (
	PromptSave          = "Save matches"
	PromptNo            = "No"
	PromptReport        = "Report"
	PromptDumpToFile    = "Dump matches to file"
	PromptExcludeToFile = "Append all matches to exclude file"
	PromptReview        = "Review matches one by one"
	PromptBack          = "back"

	sourceStore = "store"
	sourceHH    = "hh"
)

var errExit = errors.New("exit requested")

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank applicants or vacancies against a stored ideal profile",
}

var searchCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Rank published applicants against a candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runSearch(cmd, searchCandidates)
	},
}

var searchVacanciesCmd = &cobra.Command{
	Use:   "vacancies",
	Short: "Rank vacancies from the store or hh.ru against a vacancy profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runSearch(cmd, searchVacancies)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchCandidatesCmd, searchVacanciesCmd)

	searchCmd.PersistentFlags().StringP("profile", "p", "", "id of the ideal profile")
	searchCmd.PersistentFlags().BoolP("auto-approve", "y", false, "save matches without asking for confirmation")
	searchCmd.PersistentFlags().Bool("skip-matched", true, "drop subjects already matched against the profile")
	searchCmd.PersistentFlags().StringP("exclude-file", "e", "", "special file with subjects to exclude. Default is unset.")
	searchCmd.MarkPersistentFlagRequired("profile")

	searchVacanciesCmd.Flags().String("source", sourceStore, "vacancy pool: store or hh")

	viper.BindPFlag("exclude-file", searchCmd.PersistentFlags().Lookup("exclude-file"))
	viper.BindPFlag("skip-matched", searchCmd.PersistentFlags().Lookup("skip-matched"))
}

type searchFunc func(ctx context.Context, cmd *cobra.Command, e *env, db *store.Store, s *search.Searcher, profileID string) (*search.Ranked, error)

func runSearch(cmd *cobra.Command, fn searchFunc) {
	ctx := commandContext(cmd)

	e := setup()
	defer e.logger.Sync()

	e.logger.Info("starting the profile-matcher", zap.String("version", version))

	db := e.openStore(ctx)
	defer db.Close()

	filter := filtering.Config{
		ExcludedSubjects: e.config.excludedSubjects(),
		ExcludeFile:      e.config.ExcludeFile,
		SkipMatched:      e.config.SkipMatched,
	}

	profileID, _ := cmd.Flags().GetString("profile")

	ranked, err := fn(ctx, cmd, e, db, e.searcher(db, filter), profileID)
	if err != nil {
		e.logger.Fatal("searching", zap.Error(err))
	}

	if ranked.Len() == 0 {
		e.logger.Info("exiting", zap.String("reason", "no matches above the profile minimum"))
		return
	}

	prompt := actionPrompt(e.config.ExcludeFile != "")

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	action := PromptSave
	for {
		if !autoApprove {
			_, action, err = prompt.Run()
			if err != nil {
				e.logger.Fatal("exiting", zap.Error(err))
			}
		}

		e.logger.Info("current list of matches", zap.Int("count", ranked.Len()))

		if err := handleAction(ctx, action, e, db, ranked); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			e.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func actionPrompt(withExclude bool) promptui.Select {
	items := []string{PromptSave, PromptNo, PromptReport, PromptReview, PromptDumpToFile}
	if withExclude {
		items = append(items, PromptExcludeToFile)
	}
	return promptui.Select{
		Label: "Proceed?",
		Items: items,
	}
}

func searchCandidates(ctx context.Context, _ *cobra.Command, _ *env, db *store.Store, s *search.Searcher, profileID string) (*search.Ranked, error) {
	profile, err := db.CandidateProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.Candidates(ctx, profile, db)
}

func searchVacancies(ctx context.Context, cmd *cobra.Command, e *env, db *store.Store, s *search.Searcher, profileID string) (*search.Ranked, error) {
	profile, err := db.VacancyProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	source, _ := cmd.Flags().GetString("source")
	switch source {
	case sourceStore:
		return s.Vacancies(ctx, profile, db)
	case sourceHH:
		return s.Vacancies(ctx, profile, e.hhSource(e.hhClient(false)))
	default:
		return nil, fmt.Errorf("unknown vacancy source %q (want %s or %s)", source, sourceStore, sourceHH)
	}
}

func handleAction(ctx context.Context, action string, e *env, db *store.Store, ranked *search.Ranked) error {
	switch action {
	case PromptSave:
		s := e.searcher(db, filtering.Config{})
		if _, err := s.Persist(ctx, db, ranked); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		e.logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReport:
		pretty, _ := json.MarshalIndent(ranked.Report(), "", "  ")
		e.logger.Info(string(pretty), zap.Int("matches count", ranked.Len()))
		return nil
	case PromptDumpToFile:
		filename, err := ranked.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		e.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExcludeToFile:
		return excludeAll(e, ranked)
	case PromptReview:
		return review(e, ranked)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// review lets the user pick ranked subjects and logs the full result of each pick.
func review(e *env, ranked *search.Ranked) error {
	labels := ranked.Labels()

	for {
		subjectPrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: append(append([]string{}, labels...), PromptBack),
		}

		idx, selected, err := subjectPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		entry := ranked.Items[idx]
		e.logger.Info(selected, logger.MatchFields(entry.Subject.SubjectID(), entry.Result)...)
	}
}

func excludeAll(e *env, ranked *search.Ranked) error {
	path := e.config.ExcludeFile

	excluded, err := filtering.LoadExcluded(path)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &filtering.ExcludedSubjects{}, nil
	}
	if err != nil {
		return err
	}

	pool := &filtering.Pool{Items: ranked.Items}
	excluded.Append(pool.ToExcluded(ranked.Kind, ranked.ProfileID))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	e.logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", ranked.Len()))
	ranked.Items = nil
	return errExit
}
