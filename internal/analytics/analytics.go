package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/mindwell/mindwell-backend/internal/models"
)

// WeekStartsOn fixes the calendar-week convention used by Comparison.
const WeekStartsOn = time.Sunday

// SundayIndex is the day-of-week bucket Sunday is reported under. Buckets
// run Monday=1 through Saturday=6 with Sunday remapped to 7.
const SundayIndex = 7

// MoodCount is one row of the mood distribution.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// TrendPoint is one calendar day's aggregate.
type TrendPoint struct {
	Date        string  `json:"date"`
	AvgWellness float64 `json:"avgWellness"`
	AvgMood     float64 `json:"avgMood"`
	EntryCount  int     `json:"entryCount"`
}

// Overview is the headline dashboard payload.
type Overview struct {
	TotalEntries     int          `json:"totalEntries"`
	AvgWellnessScore float64      `json:"avgWellnessScore"`
	MoodDistribution []MoodCount  `json:"moodDistribution"`
	WeeklyTrend      []TrendPoint `json:"weeklyTrend"`
	RecentEntries    int          `json:"recentEntries"`
}

// MoodStat aggregates one distinct mood value.
type MoodStat struct {
	Mood        string  `json:"mood"`
	Count       int     `json:"count"`
	AvgWellness float64 `json:"avgWellness"`
	AvgScore    float64 `json:"avgScore"`
}

// MoodTrend counts occurrences of a mood within one ISO week.
type MoodTrend struct {
	Mood  string `json:"mood"`
	Year  int    `json:"year"`
	Week  int    `json:"week"`
	Count int    `json:"count"`
}

// MoodAnalysis bundles per-mood stats with week-by-week mood counts.
type MoodAnalysis struct {
	MoodStats  []MoodStat  `json:"moodStats"`
	MoodTrends []MoodTrend `json:"moodTrends"`
}

// DistributionBucket is one fixed wellness-score range.
type DistributionBucket struct {
	Range      string  `json:"range"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TagCount is one row of the common-tags ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// HourCount is the entry count for one hour of the day (0-23).
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayOfWeekCount is the entry count for one day of the week (Mon=1 .. Sat=6,
// Sun=7).
type DayOfWeekCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// Patterns describes writing habits over a trailing window.
type Patterns struct {
	AvgEntryLength        int              `json:"avgEntryLength"`
	CommonTags            []TagCount       `json:"commonTags"`
	HourlyDistribution    []HourCount      `json:"hourlyDistribution"`
	DayOfWeekDistribution []DayOfWeekCount `json:"dayOfWeekDistribution"`
	TotalEntries          int              `json:"totalEntries"`
	Period                string           `json:"period"`
}

// MetricComparison reports one metric for the current and prior week plus the
// percent change. Change is 0 when the prior week's value is 0.
type MetricComparison struct {
	ThisWeek float64 `json:"thisWeek"`
	LastWeek float64 `json:"lastWeek"`
	Change   float64 `json:"change"`
}

// Comparison is the week-over-week payload.
type Comparison struct {
	Wellness MetricComparison `json:"wellness"`
	Mood     MetricComparison `json:"mood"`
	Entries  MetricComparison `json:"entries"`
}

// ComputeOverview returns totals, the mood distribution, and the trailing
// 7-day daily trend for the given snapshot.
func ComputeOverview(entries []models.JournalEntry, now time.Time) Overview {
	total := len(entries)

	var avgWellness float64
	if total > 0 {
		sum := 0
		for _, e := range entries {
			sum += e.WellnessScore
		}
		avgWellness = float64(sum) / float64(total)
	}

	since := now.AddDate(0, 0, -7)
	recent := 0
	for _, e := range entries {
		if !e.CreatedAt.Before(since) {
			recent++
		}
	}

	return Overview{
		TotalEntries:     total,
		AvgWellnessScore: avgWellness,
		MoodDistribution: moodDistribution(entries),
		WeeklyTrend:      bucketByDay(entries, since),
		RecentEntries:    recent,
	}
}

// ComputeTrends buckets the trailing periodDays of entries by calendar day,
// ascending. Days without entries produce no row.
func ComputeTrends(entries []models.JournalEntry, now time.Time, periodDays int) []TrendPoint {
	since := now.AddDate(0, 0, -periodDays)
	return bucketByDay(entries, since)
}

// ComputeMoodAnalysis returns per-mood aggregates plus mood counts bucketed
// by ISO week.
func ComputeMoodAnalysis(entries []models.JournalEntry) MoodAnalysis {
	type moodAgg struct {
		count       int
		wellnessSum int
		scoreSum    int
	}
	aggs := make(map[string]*moodAgg)
	var order []string
	for _, e := range entries {
		agg, ok := aggs[e.Mood]
		if !ok {
			agg = &moodAgg{}
			aggs[e.Mood] = agg
			order = append(order, e.Mood)
		}
		agg.count++
		agg.wellnessSum += e.WellnessScore
		agg.scoreSum += e.MoodScore
	}

	stats := make([]MoodStat, 0, len(order))
	for _, mood := range order {
		agg := aggs[mood]
		stats = append(stats, MoodStat{
			Mood:        mood,
			Count:       agg.count,
			AvgWellness: float64(agg.wellnessSum) / float64(agg.count),
			AvgScore:    float64(agg.scoreSum) / float64(agg.count),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	type weekKey struct {
		mood string
		year int
		week int
	}
	weekCounts := make(map[weekKey]int)
	for _, e := range entries {
		year, week := e.CreatedAt.ISOWeek()
		weekCounts[weekKey{mood: e.Mood, year: year, week: week}]++
	}
	trends := make([]MoodTrend, 0, len(weekCounts))
	for k, count := range weekCounts {
		trends = append(trends, MoodTrend{Mood: k.mood, Year: k.year, Week: k.week, Count: count})
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year < trends[j].Year
		}
		if trends[i].Week != trends[j].Week {
			return trends[i].Week < trends[j].Week
		}
		return trends[i].Mood < trends[j].Mood
	})

	return MoodAnalysis{MoodStats: stats, MoodTrends: trends}
}

// wellnessBuckets are the fixed histogram ranges. The top bucket is inclusive
// of 100 so a perfect score is never left out of the distribution.
var wellnessBuckets = []struct {
	low   int
	high  int
	rng   string
	label string
	color string
}{
	{0, 20, "0-20", "Needs Support", "#ff6b6b"},
	{20, 40, "21-40", "Room for Improvement", "#ffa726"},
	{40, 60, "41-60", "Moderate Wellness", "#ffd54f"},
	{60, 80, "61-80", "Good Wellness", "#81c784"},
	{80, 100, "81-100", "Excellent Wellness", "#4caf50"},
}

// ComputeWellnessDistribution counts entries per fixed wellness-score bucket
// with each bucket's share of the total, one decimal place.
func ComputeWellnessDistribution(entries []models.JournalEntry) []DistributionBucket {
	total := len(entries)
	results := make([]DistributionBucket, 0, len(wellnessBuckets))
	for i, b := range wellnessBuckets {
		last := i == len(wellnessBuckets)-1
		count := 0
		for _, e := range entries {
			s := e.WellnessScore
			if s >= b.low && (s < b.high || (last && s <= b.high)) {
				count++
			}
		}
		percentage := 0.0
		if total > 0 {
			percentage = round1(float64(count) / float64(total) * 100)
		}
		results = append(results, DistributionBucket{
			Range:      b.rng,
			Label:      b.label,
			Color:      b.color,
			Count:      count,
			Percentage: percentage,
		})
	}
	return results
}

// ComputePatterns describes writing habits over the trailing days window.
func ComputePatterns(entries []models.JournalEntry, now time.Time, days int) Patterns {
	since := now.AddDate(0, 0, -days)
	var window []models.JournalEntry
	for _, e := range entries {
		if !e.CreatedAt.Before(since) {
			window = append(window, e)
		}
	}

	avgLength := 0
	if len(window) > 0 {
		sum := 0
		for _, e := range window {
			sum += utf8.RuneCountInString(e.Content)
		}
		avgLength = int(math.Round(float64(sum) / float64(len(window))))
	}

	tagCounts := make(map[string]int)
	var tagOrder []string
	for _, e := range window {
		for _, t := range e.Tags {
			if _, ok := tagCounts[t]; !ok {
				tagOrder = append(tagOrder, t)
			}
			tagCounts[t]++
		}
	}
	commonTags := make([]TagCount, 0, len(tagOrder))
	for _, t := range tagOrder {
		commonTags = append(commonTags, TagCount{Tag: t, Count: tagCounts[t]})
	}
	sort.SliceStable(commonTags, func(i, j int) bool {
		return commonTags[i].Count > commonTags[j].Count
	})
	if len(commonTags) > 10 {
		commonTags = commonTags[:10]
	}

	var hourly [24]int
	var dow [7]int
	for _, e := range window {
		hourly[e.CreatedAt.Hour()]++
		dow[int(e.CreatedAt.Weekday())]++
	}
	hourlyDist := make([]HourCount, 24)
	for h, c := range hourly {
		hourlyDist[h] = HourCount{Hour: h, Count: c}
	}
	dowDist := make([]DayOfWeekCount, 7)
	for idx, c := range dow {
		day := idx
		if idx == int(time.Sunday) {
			day = SundayIndex
		}
		dowDist[idx] = DayOfWeekCount{Day: day, Count: c}
	}

	return Patterns{
		AvgEntryLength:        avgLength,
		CommonTags:            commonTags,
		HourlyDistribution:    hourlyDist,
		DayOfWeekDistribution: dowDist,
		TotalEntries:          len(window),
		Period:                fmt.Sprintf("%d days", days),
	}
}

// ComputeComparison reports the current calendar week against the previous
// one for average wellness, average mood score, and entry count.
func ComputeComparison(entries []models.JournalEntry, now time.Time) Comparison {
	thisStart := startOfWeek(now)
	nextStart := thisStart.AddDate(0, 0, 7)
	lastStart := thisStart.AddDate(0, 0, -7)

	thisW, thisM, thisC := aggregateRange(entries, thisStart, nextStart)
	lastW, lastM, lastC := aggregateRange(entries, lastStart, thisStart)

	return Comparison{
		Wellness: MetricComparison{ThisWeek: thisW, LastWeek: lastW, Change: percentChange(thisW, lastW)},
		Mood:     MetricComparison{ThisWeek: thisM, LastWeek: lastM, Change: percentChange(thisM, lastM)},
		Entries:  MetricComparison{ThisWeek: float64(thisC), LastWeek: float64(lastC), Change: percentChange(float64(thisC), float64(lastC))},
	}
}

// bucketByDay groups entries created at or after since into calendar-day
// rows, ascending by date. Only days with at least one entry are emitted.
func bucketByDay(entries []models.JournalEntry, since time.Time) []TrendPoint {
	type dayAgg struct {
		wellnessSum int
		moodSum     int
		count       int
	}
	buckets := make(map[string]*dayAgg)
	for _, e := range entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		key := e.CreatedAt.Format("2006-01-02")
		agg, ok := buckets[key]
		if !ok {
			agg = &dayAgg{}
			buckets[key] = agg
		}
		agg.wellnessSum += e.WellnessScore
		agg.moodSum += e.MoodScore
		agg.count++
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rows := make([]TrendPoint, 0, len(dates))
	for _, d := range dates {
		agg := buckets[d]
		rows = append(rows, TrendPoint{
			Date:        d,
			AvgWellness: float64(agg.wellnessSum) / float64(agg.count),
			AvgMood:     float64(agg.moodSum) / float64(agg.count),
			EntryCount:  agg.count,
		})
	}
	return rows
}

func moodDistribution(entries []models.JournalEntry) []MoodCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if _, ok := counts[e.Mood]; !ok {
			order = append(order, e.Mood)
		}
		counts[e.Mood]++
	}
	rows := make([]MoodCount, 0, len(order))
	for _, m := range order {
		rows = append(rows, MoodCount{Mood: m, Count: counts[m]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// aggregateRange averages over entries with start <= createdAt < end.
func aggregateRange(entries []models.JournalEntry, start, end time.Time) (avgWellness, avgMood float64, count int) {
	wellnessSum, moodSum := 0, 0
	for _, e := range entries {
		if e.CreatedAt.Before(start) || !e.CreatedAt.Before(end) {
			continue
		}
		wellnessSum += e.WellnessScore
		moodSum += e.MoodScore
		count++
	}
	if count > 0 {
		avgWellness = float64(wellnessSum) / float64(count)
		avgMood = float64(moodSum) / float64(count)
	}
	return avgWellness, avgMood, count
}

// startOfWeek returns midnight of the week's first day in t's location.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(WeekStartsOn) + 7) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round1((current - previous) / previous * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
