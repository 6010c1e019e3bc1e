package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/logger"
	"github.com/spigell/profile-matcher/internal/records"
	"github.com/spigell/profile-matcher/internal/store"
)

const resumePreviewLen = 120

var importCmd = &cobra.Command{
	Use:   "import [fixtures.yaml...]",
	Short: "Load applicants, vacancies and profiles into the record store",
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("hh-resumes", false, "also import the token owner's hh.ru resumes as published applicants")
}

func runImport(cmd *cobra.Command, files []string) {
	ctx := commandContext(cmd)

	e := setup()
	defer e.logger.Sync()

	hhResumes, _ := cmd.Flags().GetBool("hh-resumes")
	if len(files) == 0 && !hhResumes {
		e.logger.Fatal("nothing to import", zap.String("hint", "pass fixture files or --hh-resumes"))
	}

	db := e.openStore(ctx)
	defer db.Close()

	for _, path := range files {
		fixtures, err := loadFixtureFile(path)
		if err != nil {
			e.logger.Fatal("loading fixtures", zap.String("file", path), zap.Error(err))
		}
		if err := importFixtures(ctx, db, fixtures); err != nil {
			e.logger.Fatal("importing fixtures", zap.String("file", path), zap.Error(err))
		}
		e.logger.Info("fixtures imported", zap.String("file", path), zap.Int("records", fixtures.Len()))
	}

	if hhResumes {
		if err := importHHResumes(ctx, e, db); err != nil {
			e.logger.Fatal("importing hh.ru resumes", zap.Error(err))
		}
	}
}

func loadFixtureFile(path string) (*records.Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return records.LoadFixtures(file)
}

func importFixtures(ctx context.Context, db *store.Store, f *records.Fixtures) error {
	for _, a := range f.Applicants {
		if err := db.UpsertApplicant(ctx, a); err != nil {
			return err
		}
	}
	for _, v := range f.Vacancies {
		if err := db.UpsertVacancy(ctx, v); err != nil {
			return err
		}
	}
	for _, p := range f.CandidateProfiles {
		if err := db.UpsertCandidateProfile(ctx, p); err != nil {
			return err
		}
	}
	for _, p := range f.VacancyProfiles {
		if err := db.UpsertVacancyProfile(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func importHHResumes(ctx context.Context, e *env, db *store.Store) error {
	hh := e.hhClient(true)

	resumes, err := hh.GetMineResumes(ctx)
	if err != nil {
		return err
	}
	e.logger.Info("getting mine resumes", zap.Int("count", resumes.Len()), zap.Strings("titles", resumes.Titles()))

	for _, r := range resumes.Items {
		details, err := hh.GetResumeDetails(ctx, r.ID)
		if err != nil {
			return err
		}

		applicant, err := details.Applicant()
		if err != nil {
			return fmt.Errorf("converting resume %s: %w", r.ID, err)
		}

		if err := db.UpsertApplicant(ctx, applicant); err != nil {
			return err
		}
		e.logger.Debug("resume imported",
			zap.String("applicant_id", applicant.ID),
			zap.String("resume_preview", logger.TruncateForLog(applicant.FullResumeText(), resumePreviewLen)),
		)
	}
	return nil
}
