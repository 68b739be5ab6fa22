package services

import (
	"strconv"

	"fwd/internal/domain/models"
	"fwd/internal/utils"
)

// TripName derives a display name from a trip's member steps. Stays drive
// the name; flights and remaining steps are fallbacks. The function is pure
// and order-independent: steps are re-sorted by start time before city
// collection, so the same membership always yields the same name.
//
// Policy: one stay city names the trip outright; two become "A and B"; three
// or more collapse to the state all the stays share, else "First + N more".
func TripName(steps []models.TravelStep) string {
	sorted := sortByStart(steps)

	var cities []string
	seen := map[string]bool{}
	var stays []models.TravelStep
	for _, s := range sorted {
		if s.Type != models.TypeHotel {
			continue
		}
		stays = append(stays, s)
		city := stayCity(s)
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		cities = append(cities, city)
	}

	switch len(cities) {
	case 0:
		return fallbackName(sorted)
	case 1:
		return cities[0]
	case 2:
		return cities[0] + " and " + cities[1]
	}

	if state, ok := sharedStayState(stays); ok {
		return state
	}
	return cities[0] + " + " + strconv.Itoa(len(cities)-1) + " more"
}

// stayCity prefers the address (structured, comma-separated) over the
// free-text hotel name.
func stayCity(s models.TravelStep) string {
	if city := utils.CityFromAddress(s.OriginAddress); city != "" {
		return city
	}
	return utils.CityFromChainName(s.OriginName)
}

// sharedStayState finds the one US state every stay's address names. A stay
// with no address breaks the consensus.
func sharedStayState(stays []models.TravelStep) (string, bool) {
	addrs := make([]string, 0, len(stays))
	for _, s := range stays {
		if s.OriginAddress == "" {
			return "", false
		}
		addrs = append(addrs, s.OriginAddress)
	}
	return utils.SharedState(addrs)
}

func fallbackName(sorted []models.TravelStep) string {
	for _, s := range sorted {
		if s.Type == models.TypeFlight && s.DestinationName != "" {
			if city := utils.ExtractCity(s.DestinationName); city != "" {
				return city
			}
			return s.DestinationName
		}
	}
	if len(sorted) > 0 {
		first := sorted[0]
		if city := utils.CityFromAddress(first.OriginAddress); city != "" {
			return city
		}
		if city := utils.ExtractCity(first.OriginName); city != "" {
			return city
		}
		if city := utils.ExtractCity(first.DestinationName); city != "" {
			return city
		}
	}
	return "Trip"
}
