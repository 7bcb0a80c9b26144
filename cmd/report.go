package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"study_coach_backend/internal/config"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/repository"
	"study_coach_backend/internal/service"
	"study_coach_backend/pkg/database"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	reportUserID   uint
	reportInactive bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print goal progress, streak and insights for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportUserID == 0 {
			return fmt.Errorf("--user is required")
		}

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return err
		}
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			return err
		}

		sessionRepo := repository.NewSessionRepository(db)
		goals := service.NewGoalService(
			repository.NewGoalRepository(db),
			sessionRepo,
			repository.NewMemoryDismissalStore(nil),
		)
		analytics := service.NewAnalyticsService(sessionRepo)

		ctx := context.Background()
		progress, err := goals.ListWithProgress(ctx, reportUserID, reportInactive)
		if err != nil {
			return err
		}
		streak, err := analytics.Streak(ctx, reportUserID)
		if err != nil {
			return err
		}
		insights, err := analytics.Insights(ctx, reportUserID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderGoals(out, progress)
		fmt.Fprintf(out, "\nStreak: %d day(s)\n", streak.Streak)
		renderInsights(out, insights)
		return nil
	},
}

func renderGoals(w io.Writer, goals []model.GoalWithProgress) {
	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Goal", "Type", "Period", "Progress", "%", "Days Left", "Active"})
	for _, g := range goals {
		table.Append([]string{
			g.Name,
			string(g.Type),
			string(g.Period),
			fmt.Sprintf("%s / %s", strconv.FormatFloat(g.Progress.Current, 'f', -1, 64), strconv.FormatFloat(g.Progress.Target, 'f', -1, 64)),
			strconv.Itoa(g.Progress.Percentage),
			strconv.Itoa(g.Progress.DaysRemaining),
			strconv.FormatBool(g.IsActive),
		})
	}
	table.Render()
}

func renderInsights(w io.Writer, insights *model.Insights) {
	fmt.Fprintf(w, "Analyzed sessions: %d\n", insights.ValidSessions)
	if insights.ValidSessions == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Mastery", "Sessions"})
	for _, c := range insights.CategoryMastery {
		table.Append([]string{c.Category, strconv.Itoa(c.Mastery), strconv.Itoa(c.Count)})
	}
	table.Render()

	fmt.Fprintln(w, insights.MostFrequentConfusion.Message)
	fmt.Fprintln(w, insights.StudyMomentum.Message)
	fmt.Fprintln(w, insights.LearningTrend.Message)
}

func init() {
	reportCmd.Flags().UintVar(&reportUserID, "user", 0, "user id to report on")
	reportCmd.Flags().BoolVar(&reportInactive, "include-inactive", false, "include inactive goals")
	rootCmd.AddCommand(reportCmd)
}
