package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/matching"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume file against one ideal profile file and print the result",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "file with the resume text (or vacancy text with --vacancy)")
	scoreCmd.Flags().StringP("profile", "p", "", "file with the ideal resume or ideal position text")
	scoreCmd.Flags().StringP("skills", "s", "", "file with the required skills text")
	scoreCmd.Flags().StringP("level", "l", "middle", "target experience level")
	scoreCmd.Flags().Bool("vacancy", false, "score a vacancy against an ideal position by meaning only")

	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagRequired("profile")
}

func score(cmd *cobra.Command) {
	e := setup()

	document, err := readFlagFile(cmd, "resume")
	if err != nil {
		e.logger.Fatal("reading document", zap.Error(err))
	}
	ideal, err := readFlagFile(cmd, "profile")
	if err != nil {
		e.logger.Fatal("reading profile", zap.Error(err))
	}

	var result *matching.Result
	if vacancy, _ := cmd.Flags().GetBool("vacancy"); vacancy {
		result = e.engine.MatchVacancy(document, ideal)
	} else {
		skills, err := readFlagFile(cmd, "skills")
		if err != nil {
			e.logger.Fatal("reading required skills", zap.Error(err))
		}
		level, _ := cmd.Flags().GetString("level")

		result = e.engine.Match(document, matching.Target{
			IdealText:          ideal,
			RequiredSkillsText: skills,
			ExperienceLevel:    level,
		})
	}

	if err := printJSON(result); err != nil {
		e.logger.Fatal("printing result", zap.Error(err))
	}
}

// readFlagFile returns the content of the file named by flag, empty when the flag is unset.
func readFlagFile(cmd *cobra.Command, flag string) (string, error) {
	path, err := cmd.Flags().GetString(flag)
	if err != nil || path == "" {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading --%s: %w", flag, err)
	}
	return string(data), nil
}
