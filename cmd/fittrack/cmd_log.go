package main

import (
	"fmt"
	"strconv"
	"strings"

	"fittrack/internal/domain"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and browse workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listLogs()
		},
	}
	cmd.AddCommand(newLogAddCmd(), newLogListCmd(), newLogDeleteCmd())
	return cmd
}

func newLogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workouts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listLogs()
		},
	}
}

func listLogs() error {
	logs := cli.facade.WorkoutLogs()
	if len(logs) == 0 {
		fmt.Println("No workouts recorded yet.")
		return nil
	}
	for _, log := range logs {
		fmt.Printf("%s  %-24s %3d min  %7.0f kg total  [%s]\n",
			log.Date.Format("2006-01-02"), log.Name, log.DurationMin, log.TotalVolume, log.ID)
	}
	return nil
}

func newLogAddCmd() *cobra.Command {
	var (
		name     string
		duration int
		exercise string
		sets     []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a completed workout",
		Long: `Record a completed workout. Sets are given as WEIGHTxREPS, e.g.:

  fittrack log add --name "Push day" --duration 55 --exercise bench-press \
      --set 80x5 --set 80x5 --set 82.5x3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedSets := make([]domain.SetLog, 0, len(sets))
			for _, raw := range sets {
				set, err := parseSet(raw)
				if err != nil {
					return err
				}
				parsedSets = append(parsedSets, set)
			}

			log := domain.NewWorkoutLog("", name)
			log.DurationMin = duration
			log.Exercises = []domain.WorkoutExerciseLog{
				{
					ID:         uuid.NewString(),
					ExerciseID: exercise,
					Sets:       parsedSets,
				},
			}

			if err := cli.facade.SaveWorkoutLog(cmd.Context(), *log); err != nil {
				return err
			}
			fmt.Printf("Recorded %q: %.0f kg total volume.\n", name, cli.facade.WorkoutLogs()[0].TotalVolume)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "workout name")
	cmd.Flags().IntVar(&duration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&exercise, "exercise", "", "exercise id (see 'fittrack exercises')")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set as WEIGHTxREPS, repeatable")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("exercise")
	return cmd
}

func newLogDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <log-id>",
		Short: "Delete a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.facade.DeleteWorkoutLog(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func newExercisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List the exercise library",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := cli.facade.Language()
			for _, ex := range cli.facade.Exercises() {
				fmt.Printf("%-16s %-28s %s\n", ex.ID, ex.Name.In(lang), ex.MuscleGroup)
			}
			return nil
		},
	}
}

// parseSet turns "82.5x3" into a completed SetLog.
func parseSet(raw string) (domain.SetLog, error) {
	parts := strings.SplitN(strings.ToLower(raw), "x", 2)
	if len(parts) != 2 {
		return domain.SetLog{}, fmt.Errorf("invalid set %q, expected WEIGHTxREPS", raw)
	}
	weight, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.SetLog{}, fmt.Errorf("invalid weight in set %q", raw)
	}
	reps, err := strconv.Atoi(parts[1])
	if err != nil || reps <= 0 {
		return domain.SetLog{}, fmt.Errorf("invalid reps in set %q", raw)
	}
	return domain.NewSetLog(weight, reps, true), nil
}
