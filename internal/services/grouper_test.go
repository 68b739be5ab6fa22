package services

import (
	"testing"

	"fwd/internal/domain/models"
)

func step(id int64, stepType, start, end, origin, dest string) models.TravelStep {
	return models.TravelStep{
		ID:              id,
		UserID:          1,
		Type:            stepType,
		StartDateTime:   start,
		EndDateTime:     end,
		OriginName:      origin,
		DestinationName: dest,
	}
}

func hotelStep(id int64, start, end, name, address string) models.TravelStep {
	s := step(id, models.TypeHotel, start, end, name, "")
	s.OriginAddress = address
	return s
}

func stepIDs(g TripGroup) []int64 { return g.StepIDs }

func TestGroupStepsOneVacation(t *testing.T) {
	steps := []models.TravelStep{
		step(1, models.TypeFlight, "2025-11-19T08:00:00-05:00", "2025-11-19T11:30:00-06:00", "New York (JFK)", "Austin (AUS)"),
		hotelStep(2, "2025-11-20T15:00:00-06:00", "2025-11-24T11:00:00-06:00", "Hilton Austin", "500 E 4th St, Austin, TX 78701"),
		step(3, models.TypeFlight, "2025-12-02T09:00:00-06:00", "2025-12-02T13:30:00-05:00", "Austin (AUS)", "New York (JFK)"),
	}

	groups := GroupSteps(steps)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if len(g.Steps) != 3 {
		t.Fatalf("got %d steps in group, want 3", len(g.Steps))
	}
	if g.StartDate != "2025-11-19" || g.EndDate != "2025-12-02" {
		t.Fatalf("got range %s..%s, want 2025-11-19..2025-12-02", g.StartDate, g.EndDate)
	}
}

func TestGroupStepsSplitsBeyondGap(t *testing.T) {
	steps := []models.TravelStep{
		hotelStep(1, "2025-01-01T15:00:00-05:00", "2025-01-03T11:00:00-05:00", "Ace Hotel Brooklyn", "20 N 3rd St, Brooklyn, NY 11249"),
		hotelStep(2, "2025-01-20T15:00:00-06:00", "2025-01-22T11:00:00-06:00", "Hilton Austin", "500 E 4th St, Austin, TX 78701"),
	}
	groups := GroupSteps(steps)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
}

func TestGroupStepsJoinsAtGapBoundary(t *testing.T) {
	steps := []models.TravelStep{
		hotelStep(1, "2025-01-01T15:00:00-05:00", "2025-01-03T11:00:00-05:00", "Ace Hotel Brooklyn", "20 N 3rd St, Brooklyn, NY 11249"),
		hotelStep(2, "2025-01-10T09:00:00-05:00", "2025-01-11T11:00:00-05:00", "Another Place", "1 Main St, Albany, NY 12207"),
	}
	// Jan 3 11:00 to Jan 10 09:00 is just under seven full days.
	groups := GroupSteps(steps)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
}

func TestGroupStepsLocationOverlapOverridesGap(t *testing.T) {
	steps := []models.TravelStep{
		hotelStep(1, "2025-01-01T15:00:00-05:00", "2025-01-03T11:00:00-05:00", "Ace Hotel Brooklyn", "20 N 3rd St, Brooklyn, NY 11249"),
		step(2, models.TypeActivity, "2025-03-01T19:00:00-05:00", "", "Ace Hotel Brooklyn", ""),
	}
	groups := GroupSteps(steps)
	if len(groups) != 1 {
		t.Fatalf("exact-name overlap should join despite the gap, got %d groups", len(groups))
	}
}

func TestGroupStepsOverlapIsRawStringEquality(t *testing.T) {
	// Same airport, differently rendered. The overlap rule does not
	// canonicalize, so these split.
	steps := []models.TravelStep{
		step(1, models.TypeFlight, "2025-01-01T08:00:00-06:00", "2025-01-01T11:00:00-05:00", "Chicago (ORD)", "New York (JFK)"),
		step(2, models.TypeTrain, "2025-02-01T08:00:00-06:00", "", "Chicago O'Hare (ORD)", ""),
	}
	groups := GroupSteps(steps)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
}

func TestGroupStepsReturnFlightOverridesGap(t *testing.T) {
	steps := []models.TravelStep{
		step(1, models.TypeFlight, "2025-11-19T08:00:00-05:00", "2025-11-19T11:30:00-06:00", "New York (JFK)", "Austin (AUS)"),
		// Different origin rendering and a different NYC airport, so
		// neither the gap nor the overlap rule applies.
		step(2, models.TypeFlight, "2025-12-02T09:00:00-06:00", "2025-12-02T13:30:00-05:00", "Austin-Bergstrom", "New York (LGA)"),
	}
	groups := GroupSteps(steps)
	if len(groups) != 1 {
		t.Fatalf("flight back to the origin city should join, got %d groups", len(groups))
	}
}

func TestGroupStepsNoReturnRuleWithoutFlightSeed(t *testing.T) {
	steps := []models.TravelStep{
		hotelStep(1, "2025-01-01T15:00:00-05:00", "2025-01-03T11:00:00-05:00", "Hilton Austin", "500 E 4th St, Austin, TX 78701"),
		step(2, models.TypeFlight, "2025-02-01T09:00:00-06:00", "", "Somewhere", "Austin (AUS)"),
	}
	groups := GroupSteps(steps)
	if len(groups) != 2 {
		t.Fatalf("return rule needs a flight-seeded origin, got %d groups", len(groups))
	}
}

func TestGroupStepsDeterministicAndOrderIndependent(t *testing.T) {
	a := []models.TravelStep{
		step(1, models.TypeFlight, "2025-11-19T08:00:00-05:00", "2025-11-19T11:30:00-06:00", "New York (JFK)", "Austin (AUS)"),
		hotelStep(2, "2025-11-20T15:00:00-06:00", "2025-11-24T11:00:00-06:00", "Hilton Austin", "500 E 4th St, Austin, TX 78701"),
		hotelStep(3, "2026-02-10T15:00:00-08:00", "2026-02-12T11:00:00-08:00", "Ace Hotel Portland", "1022 SW Harvey Milk St, Portland, OR 97205"),
	}
	b := []models.TravelStep{a[2], a[0], a[1]}

	ga := GroupSteps(a)
	gb := GroupSteps(b)
	if len(ga) != len(gb) {
		t.Fatalf("group counts differ: %d vs %d", len(ga), len(gb))
	}
	for i := range ga {
		idsA, idsB := stepIDs(ga[i]), stepIDs(gb[i])
		if len(idsA) != len(idsB) {
			t.Fatalf("group %d sizes differ", i)
		}
		for j := range idsA {
			if idsA[j] != idsB[j] {
				t.Fatalf("group %d member order differs: %v vs %v", i, idsA, idsB)
			}
		}
		if ga[i].SuggestedName != gb[i].SuggestedName {
			t.Fatalf("group %d names differ: %q vs %q", i, ga[i].SuggestedName, gb[i].SuggestedName)
		}
	}
}

func TestGroupStepsEmpty(t *testing.T) {
	if groups := GroupSteps(nil); groups != nil {
		t.Fatalf("expected nil for no steps, got %v", groups)
	}
}

func TestDateRangeSkipsMalformed(t *testing.T) {
	steps := []models.TravelStep{
		step(1, models.TypeActivity, "not-a-date", "", "X", ""),
		step(2, models.TypeActivity, "2025-05-02T10:00:00Z", "2025-05-04T10:00:00Z", "Y", ""),
	}
	start, end := DateRange(steps)
	if start != "2025-05-02" || end != "2025-05-04" {
		t.Fatalf("got %s..%s", start, end)
	}
}
