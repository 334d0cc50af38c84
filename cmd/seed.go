package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/spf13/cobra"
)

// profile defines a writing persona for generating seed data.
type profile struct {
	name        string
	description string
	// frequency is the approximate probability of writing on any given day (0.0–1.0).
	frequency float64
	// extraChance is the probability of a second or third entry on a writing day.
	extraChance float64
	// entries is a pool of content generators.
	entries []func(day time.Time, rng *rand.Rand) string
}

var profiles = map[string]profile{
	"daily-writer": {
		name:        "daily-writer",
		description: "Consistent daily journaler who rarely misses a day",
		frequency:   0.92,
		extraChance: 0.3,
		entries: []func(day time.Time, rng *rand.Rand) string{
			seedMorning,
			seedReflection,
			seedFreeform,
		},
	},
	"weekend-journaler": {
		name:        "weekend-journaler",
		description: "Writes mostly on weekends and occasionally on weekdays",
		frequency:   0.0, // handled specially per weekday/weekend
		extraChance: 0.15,
		entries: []func(day time.Time, rng *rand.Rand) string{
			seedWeekend,
			seedFreeform,
		},
	},
	"sparse": {
		name:        "sparse",
		description: "Occasional journaler, a few entries per month",
		frequency:   0.12,
		extraChance: 0.05,
		entries: []func(day time.Time, rng *rand.Rand) string{
			seedFreeform,
			seedReflection,
		},
	},
}

var seedProfile string

var seedCmd = &cobra.Command{
	Use:   "seed [year]",
	Short: "Seed a year with realistic sample entries",
	Long: `Populate a year with realistic entries so the grid has something to show.

Available profiles:
  daily-writer      – Consistent daily journaler (rarely misses a day)
  weekend-journaler – Writes mostly on weekends
  sparse            – A few entries per month

If no year is given, the current year is seeded up to today.`,
	Example: `  dotdiary seed
  dotdiary seed 2023
  dotdiary seed --profile weekend-journaler
  dotdiary seed --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listProfiles, _ := cmd.Flags().GetBool("list")
		if listProfiles {
			fmt.Fprintln(os.Stdout, "Available profiles:")
			for name, p := range profiles {
				fmt.Fprintf(os.Stdout, "  %-20s %s\n", name, p.description)
			}
			return nil
		}

		p, ok := profiles[seedProfile]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", seedProfile)
			fmt.Fprintln(os.Stderr, "Run 'dotdiary seed --list' to see available profiles.")
			os.Exit(1)
		}

		now := time.Now()
		year := now.Year()
		if len(args) == 1 {
			if _, err := fmt.Sscanf(args[0], "%d", &year); err != nil {
				return fmt.Errorf("parsing year %q: %w", args[0], err)
			}
		}

		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
		end := time.Date(year, 12, 31, 0, 0, 0, 0, time.Local)
		if end.After(now) {
			end = now
		}
		if start.After(now) {
			return fmt.Errorf("cannot seed future year %d", year)
		}

		rng := rand.New(rand.NewSource(now.UnixNano()))
		created := 0

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if !shouldWrite(p, day, rng) {
				continue
			}

			n := 1
			for n < 3 && rng.Float64() < p.extraChance {
				n++
			}
			for i := 0; i < n; i++ {
				gen := p.entries[rng.Intn(len(p.entries))]
				content := strings.TrimSpace(gen(day, rng))

				id, err := entry.NewID()
				if err != nil {
					return fmt.Errorf("generating entry ID: %w", err)
				}

				entryTime := randomTimeOfDay(day, rng)
				e := entry.Entry{
					ID:        id,
					Content:   content,
					CreatedAt: entryTime,
					UpdatedAt: entryTime,
				}
				if err := store.Create(e); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: skipping entry for %s: %v\n", day.Format("2006-01-02"), err)
					continue
				}
				created++
			}
		}

		fmt.Fprintf(os.Stdout, "Seeded %d entries for %d with profile %q.\n", created, year, p.name)
		return nil
	},
}

// shouldWrite decides whether the profile writes on the given day.
func shouldWrite(p profile, day time.Time, rng *rand.Rand) bool {
	if p.name == "weekend-journaler" {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			return rng.Float64() < 0.85
		default:
			return rng.Float64() < 0.1
		}
	}
	return rng.Float64() < p.frequency
}

// randomTimeOfDay returns a plausible clock time on the given day,
// weighted toward morning and evening writing.
func randomTimeOfDay(day time.Time, rng *rand.Rand) time.Time {
	var hour int
	if rng.Float64() < 0.5 {
		hour = 6 + rng.Intn(4) // 06:00–09:59
	} else {
		hour = 19 + rng.Intn(4) // 19:00–22:59
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), rng.Intn(60), 0, time.Local)
}

func seedMorning(day time.Time, rng *rand.Rand) string {
	mornings := []string{
		"Woke up at 6:30, went for a run along the river. The fog was still lifting.",
		"Started the day with meditation and a long breakfast. Feeling centered.",
		"Up early to catch the sunrise. Made pour-over coffee and read for an hour before work.",
		"Rough night's sleep but pushed through a morning workout. The cold shower afterward helped.",
		"Lazy morning. Stayed in bed reading until 9. Sometimes you need that.",
	}
	return "## Morning\n\n" + mornings[rng.Intn(len(mornings))]
}

func seedReflection(day time.Time, rng *rand.Rand) string {
	reflections := []string{
		"Thinking a lot about pace lately. Fast weeks feel productive but blur together; slow ones stick.",
		"Today was harder than it needed to be. Writing it down mostly to let it go.",
		"Grateful for small things today: good light in the kitchen, a letter from an old friend.",
		"One month into the new routine and it's finally starting to feel automatic.",
	}
	return reflections[rng.Intn(len(reflections))]
}

func seedFreeform(day time.Time, rng *rand.Rand) string {
	entries := []string{
		"Not sure what to write today. Some days are just... days. The ordinariness of it is its own kind of comfort.",
		"Tried a new coffee shop on the east side. The barista recommended a single-origin Ethiopian that was fruity and bright.",
		"Long walk through the botanical gardens after work. The dahlias are in full bloom.",
		"Spent the evening reorganizing my bookshelf. Found three books I forgot I owned.",
		"Rainy day. Got a lot of reading done. Made soup for dinner and the kitchen smelled amazing all evening.",
		"Cooked for friends tonight. Made a Thai curry from scratch. Everyone went for seconds.",
	}
	return entries[rng.Intn(len(entries))]
}

func seedWeekend(day time.Time, rng *rand.Rand) string {
	weekends := []string{
		"Day hike up the north ridge. Legs are wrecked but the view over the valley was worth every step.",
		"Farmers market in the morning, then spent the whole afternoon cooking. Bought too many tomatoes again.",
		"Slow Saturday. Finished the novel I've been dragging through for weeks. The ending landed.",
		"Drove out to the coast. Cold and windy but we had the beach almost to ourselves.",
	}
	return weekends[rng.Intn(len(weekends))]
}

func init() {
	seedCmd.Flags().StringVar(&seedProfile, "profile", "daily-writer", "writing persona to simulate")
	seedCmd.Flags().Bool("list", false, "list available profiles")
	rootCmd.AddCommand(seedCmd)
}
