package challenges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/physical"
)

func physicalDef(t *testing.T, name string) PhysicalDefinition {
	t.Helper()
	for _, def := range PhysicalCatalog() {
		if def.Name == name {
			return def
		}
	}
	t.Fatalf("no physical challenge named %q", name)
	return PhysicalDefinition{}
}

func workoutsDef(t *testing.T, name string) WorkoutsDefinition {
	t.Helper()
	for _, def := range WorkoutsCatalog() {
		if def.Name == name {
			return def
		}
	}
	t.Fatalf("no workout challenge named %q", name)
	return WorkoutsDefinition{}
}

func dailyEntries(start time.Time, days int) []physical.Entry {
	entries := make([]physical.Entry, 0, days)
	for i := 0; i < days; i++ {
		entries = append(entries, physical.Entry{
			Date:       start.AddDate(0, 0, i),
			Weight:     80,
			BodyFat:    20,
			BodyMuscle: 40,
		})
	}
	return entries
}

func TestConsistencyIsKey(t *testing.T) {
	def := physicalDef(t, "Consistency is Key")
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("seven consecutive days", func(t *testing.T) {
		assert.True(t, def.Satisfied(PhysicalHistory{Entries30: dailyEntries(start, 7)}))
	})

	t.Run("six days not enough", func(t *testing.T) {
		assert.False(t, def.Satisfied(PhysicalHistory{Entries30: dailyEntries(start, 6)}))
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		entries := append(dailyEntries(start, 4), dailyEntries(start.AddDate(0, 0, 6), 4)...)
		assert.False(t, def.Satisfied(PhysicalHistory{Entries30: entries}))
	})

	t.Run("streak after a gap still counts", func(t *testing.T) {
		entries := append(dailyEntries(start, 2), dailyEntries(start.AddDate(0, 0, 5), 7)...)
		assert.True(t, def.Satisfied(PhysicalHistory{Entries30: entries}))
	})
}

func TestMuscleUp(t *testing.T) {
	def := physicalDef(t, "Muscle Up!")

	entries := []physical.Entry{
		{BodyMuscle: 40},
		{BodyMuscle: 41.2},
		{BodyMuscle: 42},
	}
	assert.True(t, def.Satisfied(PhysicalHistory{Entries30: entries}))

	assert.False(t, def.Satisfied(PhysicalHistory{Entries30: []physical.Entry{
		{BodyMuscle: 40}, {BodyMuscle: 41.5},
	}}))
	assert.False(t, def.Satisfied(PhysicalHistory{Entries30: []physical.Entry{{BodyMuscle: 40}}}))
}

func TestFatLossFocus(t *testing.T) {
	def := physicalDef(t, "Fat Loss Focus")

	// entries arrive sorted by date ascending, first minus last
	assert.True(t, def.Satisfied(PhysicalHistory{Entries14: []physical.Entry{
		{BodyFat: 22}, {BodyFat: 21.5}, {BodyFat: 21},
	}}))
	assert.False(t, def.Satisfied(PhysicalHistory{Entries14: []physical.Entry{
		{BodyFat: 21}, {BodyFat: 21.8},
	}}))
	assert.False(t, def.Satisfied(PhysicalHistory{Entries14: []physical.Entry{{BodyFat: 25}}}))
}

func TestWeightWatcher(t *testing.T) {
	def := physicalDef(t, "Weight Watcher")

	assert.True(t, def.Satisfied(PhysicalHistory{Entries30: []physical.Entry{
		{Weight: 80}, {Weight: 80.4}, {Weight: 80.1},
	}}))
	assert.False(t, def.Satisfied(PhysicalHistory{Entries30: []physical.Entry{
		{Weight: 80}, {Weight: 81},
	}}))
	assert.True(t, def.Satisfied(PhysicalHistory{Entries30: []physical.Entry{{Weight: 80}}}))
	assert.False(t, def.Satisfied(PhysicalHistory{}))
}

func TestProgressPioneer(t *testing.T) {
	def := physicalDef(t, "Progress Pioneer")

	assert.True(t, def.Satisfied(PhysicalHistory{EntriesLast60: 30}))
	assert.False(t, def.Satisfied(PhysicalHistory{EntriesLast60: 29}))
}

func TestWorkoutsCatalogThresholds(t *testing.T) {
	cases := []struct {
		challenge string
		satisfied WorkoutsSummary
		missed    WorkoutsSummary
	}{
		{
			challenge: "Category Master",
			satisfied: WorkoutsSummary{CategoryWorkouts: map[string]int{"Strength": 1, "Cardio": 1, "Sports": 1, "Mobility": 1}},
			missed:    WorkoutsSummary{CategoryWorkouts: map[string]int{"Strength": 5, "Cardio": 5, "Sports": 5}},
		},
		{
			challenge: "Endurance Streak",
			satisfied: WorkoutsSummary{TotalDurationMin: 600},
			missed:    WorkoutsSummary{TotalDurationMin: 599},
		},
		{
			challenge: "Strength Specialist",
			satisfied: WorkoutsSummary{CategoryWorkouts: map[string]int{"Strength": 5}},
			missed:    WorkoutsSummary{CategoryWorkouts: map[string]int{"Strength": 4}},
		},
		{
			challenge: "Sports Enthusiast",
			satisfied: WorkoutsSummary{CategoryWorkouts: map[string]int{"Sports": 1}},
			missed:    WorkoutsSummary{CategoryWorkouts: map[string]int{"Cardio": 3}},
		},
		{
			challenge: "Calorie Crusher",
			satisfied: WorkoutsSummary{TotalCalories: 5000},
			missed:    WorkoutsSummary{TotalCalories: 4999},
		},
		{
			challenge: "Fitness Variety",
			satisfied: WorkoutsSummary{DistinctExercises: 8},
			missed:    WorkoutsSummary{DistinctExercises: 7},
		},
		{
			challenge: "Coach's Pick",
			satisfied: WorkoutsSummary{DistinctCoaches: 3},
			missed:    WorkoutsSummary{DistinctCoaches: 2},
		},
		{
			challenge: "Long Haul",
			satisfied: WorkoutsSummary{LongestDurationMin: 120},
			missed:    WorkoutsSummary{LongestDurationMin: 119},
		},
		{
			challenge: "Workout Titan",
			satisfied: WorkoutsSummary{Workouts: 15},
			missed:    WorkoutsSummary{Workouts: 14},
		},
	}

	for _, tc := range cases {
		t.Run(tc.challenge, func(t *testing.T) {
			def := workoutsDef(t, tc.challenge)
			assert.True(t, def.Satisfied(tc.satisfied))
			assert.False(t, def.Satisfied(tc.missed))
		})
	}
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range PhysicalCatalog() {
		require.False(t, seen[def.Name], "duplicate challenge name %q", def.Name)
		seen[def.Name] = true
	}
	for _, def := range WorkoutsCatalog() {
		require.False(t, seen[def.Name], "duplicate challenge name %q", def.Name)
		seen[def.Name] = true
	}
}
