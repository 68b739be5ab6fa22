package services

import (
	"sort"

	"fwd/internal/domain/models"
	"fwd/internal/utils"
)

// MaxGapDays is the widest day gap between consecutive steps that still
// keeps them in one trip without a location link.
const MaxGapDays = 7

// TripGroup is one suggested trip produced by GroupSteps.
type TripGroup struct {
	Steps         []models.TravelStep
	StepIDs       []int64
	SuggestedName string
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
	NightCount    int
}

// GroupSteps partitions a user's steps into trips with a single sequential
// scan. A step joins the running group when the day gap from the previous
// step is small, when its location names overlap anything already in the
// group, or when it is a flight back to the group's origin city. The overlap
// check is raw string equality on location names; "Chicago (ORD)" only
// matches a prior "Chicago (ORD)". Steps whose dates fail to parse count as
// a maximal gap and start a new group unless a location rule saves them.
func GroupSteps(steps []models.TravelStep) []TripGroup {
	if len(steps) == 0 {
		return nil
	}

	sorted := sortByStart(steps)

	var groups [][]models.TravelStep
	var current []models.TravelStep
	destinations := map[string]bool{}
	tripOrigin := ""

	noteLocations := func(s models.TravelStep) {
		if s.OriginName != "" {
			destinations[s.OriginName] = true
		}
		if s.DestinationName != "" {
			destinations[s.DestinationName] = true
		}
	}
	seed := func(s models.TravelStep) {
		current = []models.TravelStep{s}
		destinations = map[string]bool{}
		noteLocations(s)
		tripOrigin = ""
		if s.Type == models.TypeFlight {
			// The city the trip will eventually return to.
			tripOrigin = utils.ExtractCity(s.OriginName)
		}
	}

	seed(sorted[0])
	for i := 1; i < len(sorted); i++ {
		step := sorted[i]
		prev := sorted[i-1]

		gapDays, gapKnown := utils.DaysBetween(prev.EndOrStart(), step.StartDateTime)
		overlaps := (step.DestinationName != "" && destinations[step.DestinationName]) ||
			(step.OriginName != "" && destinations[step.OriginName])
		isReturnFlight := step.Type == models.TypeFlight && tripOrigin != "" &&
			utils.ExtractCity(step.DestinationName) == tripOrigin

		if (gapKnown && gapDays <= MaxGapDays) || overlaps || isReturnFlight {
			current = append(current, step)
			noteLocations(step)
			continue
		}
		groups = append(groups, current)
		seed(step)
	}
	groups = append(groups, current)

	out := make([]TripGroup, 0, len(groups))
	for _, members := range groups {
		out = append(out, summarizeGroup(members))
	}
	return out
}

func summarizeGroup(members []models.TravelStep) TripGroup {
	g := TripGroup{Steps: members, SuggestedName: TripName(members)}
	g.StartDate, g.EndDate = DateRange(members)
	for _, s := range members {
		g.StepIDs = append(g.StepIDs, s.ID)
	}
	if n, ok := utils.DaysBetween(members[0].StartDateTime, members[len(members)-1].EndOrStart()); ok {
		g.NightCount = n
	}
	return g
}

// DateRange derives a trip's plain-date bounds: min start date and max
// end-or-start date over the members. Unparseable dates are skipped.
func DateRange(steps []models.TravelStep) (startDate, endDate string) {
	for _, s := range steps {
		if k := utils.ExtractDateKey(s.StartDateTime); k != "" {
			if startDate == "" || k < startDate {
				startDate = k
			}
		}
		if k := utils.ExtractDateKey(s.EndOrStart()); k != "" {
			if endDate == "" || k > endDate {
				endDate = k
			}
		}
	}
	return startDate, endDate
}

// sortByStart orders steps by their start instant without mutating the
// input. Unparseable dates fall back to string order so the scan stays
// deterministic.
func sortByStart(steps []models.TravelStep) []models.TravelStep {
	sorted := make([]models.TravelStep, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, okA := utils.ParseInstant(sorted[i].StartDateTime)
		b, okB := utils.ParseInstant(sorted[j].StartDateTime)
		if okA && okB {
			return a.Before(b)
		}
		return sorted[i].StartDateTime < sorted[j].StartDateTime
	})
	return sorted
}
