package main

import (
	"fmt"

	"fittrack/internal/domain"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			printProfile(cli.facade.Profile(), cli.facade.Exercises())
			return nil
		},
	}
	cmd.AddCommand(newProfileSetCmd())
	return cmd
}

func newProfileSetCmd() *cobra.Command {
	var (
		name     string
		weight   float64
		height   float64
		bodyFat  float64
		age      int
		gender   string
		language string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields (only the flags you pass change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ProfilePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("weight") {
				patch.WeightKg = &weight
			}
			if cmd.Flags().Changed("height") {
				patch.HeightCm = &height
			}
			if cmd.Flags().Changed("bodyfat") {
				patch.BodyFatPct = &bodyFat
			}
			if cmd.Flags().Changed("age") {
				patch.Age = &age
			}
			if cmd.Flags().Changed("gender") {
				patch.Gender = &gender
			}
			if cmd.Flags().Changed("language") {
				if language != domain.LanguageEN && language != domain.LanguageUK {
					return fmt.Errorf("unsupported language %q (use %s or %s)",
						language, domain.LanguageEN, domain.LanguageUK)
				}
				patch.Language = &language
			}

			if err := cli.facade.UpdateProfile(cmd.Context(), patch); err != nil {
				return err
			}
			printProfile(cli.facade.Profile(), cli.facade.Exercises())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().Float64Var(&weight, "weight", 0, "body weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&bodyFat, "bodyfat", 0, "body fat percentage")
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().StringVar(&gender, "gender", "", "gender")
	cmd.Flags().StringVar(&language, "language", "", "interface language (en or uk)")
	return cmd
}

func printProfile(profile domain.UserProfile, exercises []domain.Exercise) {
	fmt.Printf("Name:     %s\n", profile.Name)
	fmt.Printf("Weight:   %.1f kg\n", profile.WeightKg)
	fmt.Printf("Height:   %.1f cm\n", profile.HeightCm)
	if profile.BodyFatPct != nil {
		fmt.Printf("Body fat: %.1f%%\n", *profile.BodyFatPct)
	}
	fmt.Printf("Age:      %d\n", profile.Age)
	fmt.Printf("Language: %s\n", profile.Language)
	if len(profile.StrengthRecords) > 0 {
		fmt.Println("Strength records:")
		for _, record := range profile.StrengthRecords {
			fmt.Printf("  %-20s %.1f kg\n", exerciseName(exercises, record.ExerciseID, profile.Language), record.OneRepMax)
		}
	}
}

// exerciseName resolves an exercise id for display; a record whose exercise
// left the library falls back to the raw id.
func exerciseName(exercises []domain.Exercise, id, lang string) string {
	for _, ex := range exercises {
		if ex.ID == id {
			return ex.Name.In(lang)
		}
	}
	return id
}
