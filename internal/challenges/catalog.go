package challenges

import (
	"time"

	"github.com/trainmate/trainmate-api/internal/physical"
)

// PhysicalHistory is the measurement history an evaluation runs
// against. Entry slices are sorted by date ascending.
type PhysicalHistory struct {
	Entries30     []physical.Entry
	Entries14     []physical.Entry
	EntriesLast60 int
}

// WorkoutsSummary aggregates the last 30 days of workout history.
// CategoryWorkouts counts, per category name, the workouts touching
// that category.
type WorkoutsSummary struct {
	Workouts           int
	TotalCalories      int
	TotalDurationMin   int
	LongestDurationMin int
	DistinctCoaches    int
	DistinctExercises  int
	CategoryWorkouts   map[string]int
}

type PhysicalDefinition struct {
	Name      string
	Satisfied func(h PhysicalHistory) bool
}

type WorkoutsDefinition struct {
	Name      string
	Satisfied func(s WorkoutsSummary) bool
}

// PhysicalCatalog returns the body measurement challenges, in the
// order they get seeded for a new user.
func PhysicalCatalog() []PhysicalDefinition {
	return []PhysicalDefinition{
		{
			Name: "Consistency is Key",
			Satisfied: func(h PhysicalHistory) bool {
				return len(h.Entries30) >= 7 && hasDailyStreak(h.Entries30, 7)
			},
		},
		{
			Name: "Muscle Up!",
			Satisfied: func(h PhysicalHistory) bool {
				if len(h.Entries30) < 2 {
					return false
				}
				min, max := h.Entries30[0].BodyMuscle, h.Entries30[0].BodyMuscle
				for _, e := range h.Entries30[1:] {
					if e.BodyMuscle < min {
						min = e.BodyMuscle
					}
					if e.BodyMuscle > max {
						max = e.BodyMuscle
					}
				}
				return max-min >= 2
			},
		},
		{
			Name: "Fat Loss Focus",
			Satisfied: func(h PhysicalHistory) bool {
				if len(h.Entries14) < 2 {
					return false
				}
				first := h.Entries14[0].BodyFat
				last := h.Entries14[len(h.Entries14)-1].BodyFat
				return first-last >= 1
			},
		},
		{
			Name: "Weight Watcher",
			Satisfied: func(h PhysicalHistory) bool {
				if len(h.Entries30) == 0 {
					return false
				}
				min, max := h.Entries30[0].Weight, h.Entries30[0].Weight
				for _, e := range h.Entries30[1:] {
					if e.Weight < min {
						min = e.Weight
					}
					if e.Weight > max {
						max = e.Weight
					}
				}
				return max-min <= 0.5
			},
		},
		{
			Name: "Progress Pioneer",
			Satisfied: func(h PhysicalHistory) bool {
				return h.EntriesLast60 >= 30
			},
		},
	}
}

// WorkoutsCatalog returns the workout history challenges, in the
// order they get seeded for a new user.
func WorkoutsCatalog() []WorkoutsDefinition {
	return []WorkoutsDefinition{
		{
			Name: "Category Master",
			Satisfied: func(s WorkoutsSummary) bool {
				return len(s.CategoryWorkouts) >= 4
			},
		},
		{
			Name: "Endurance Streak",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.TotalDurationMin >= 600
			},
		},
		{
			Name: "Strength Specialist",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.CategoryWorkouts["Strength"] >= 5
			},
		},
		{
			Name: "Sports Enthusiast",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.CategoryWorkouts["Sports"] >= 1
			},
		},
		{
			Name: "Calorie Crusher",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.TotalCalories >= 5000
			},
		},
		{
			Name: "Fitness Variety",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.DistinctExercises >= 8
			},
		},
		{
			Name: "Coach's Pick",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.DistinctCoaches >= 3
			},
		},
		{
			Name: "Long Haul",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.LongestDurationMin >= 120
			},
		},
		{
			Name: "Workout Titan",
			Satisfied: func(s WorkoutsSummary) bool {
				return s.Workouts >= 15
			},
		},
	}
}

// hasDailyStreak reports whether the entries, sorted by date
// ascending, contain a run of the given length where each step to the
// next entry is at most a day.
func hasDailyStreak(entries []physical.Entry, length int) bool {
	if length <= 1 {
		return len(entries) >= length
	}
	run := 1
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.Sub(entries[i-1].Date) <= 24*time.Hour {
			run++
			if run >= length {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
