package utils

import "testing"

func TestStripAirportCode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Chicago (ORD)", "Chicago"},
		{"Chicago ORD", "Chicago"},
		{"Austin", "Austin"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripAirportCode(c.in); got != c.want {
			t.Fatalf("StripAirportCode(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestExtractCity(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Austin International Airport (AUS)", "Austin"},
		{"New York (JFK)", "New York"},
		{"Union Station", "Union"},
		{"Hilton Austin", "Austin"},
		{"Austin", "Austin"},
	}
	for _, c := range cases {
		if got := ExtractCity(c.in); got != c.want {
			t.Fatalf("ExtractCity(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestCityFromChainName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Ace Hotel Brooklyn", "Brooklyn"},
		{"Hilton Austin", "Austin"},
		{"Holiday Inn Houston", "Houston"},
		{"Random Venue", ""},
		{"Hilton", ""},
	}
	for _, c := range cases {
		if got := CityFromChainName(c.in); got != c.want {
			t.Fatalf("CityFromChainName(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestCityFromAddress(t *testing.T) {
	cases := []struct{ in, want string }{
		{"20 W 29th St, New York, NY 10001", "New York"},
		{"500 E 4th St, Austin, TX 78701", "Austin"},
		{"1 Ferry Plaza, San Francisco, CA 94111", "San Francisco"},
		{"12345", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := CityFromAddress(c.in); got != c.want {
			t.Fatalf("CityFromAddress(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestStateOfAddress(t *testing.T) {
	cases := []struct{ in, want string }{
		{"123 Main St, Austin, TX 78701", "Texas"},
		{"500 Canal St, New Orleans, Louisiana", "Louisiana"},
		// "La" in a hotel name must not read as Louisiana.
		{"La Quinta Inn, 100 Elm St, Dallas, TX", "Texas"},
		{"somewhere in europe", ""},
	}
	for _, c := range cases {
		if got := StateOfAddress(c.in); got != c.want {
			t.Fatalf("StateOfAddress(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestSharedState(t *testing.T) {
	state, ok := SharedState([]string{
		"500 E 4th St, Austin, TX 78701",
		"1600 Lamar St, Houston, TX 77010",
	})
	if !ok || state != "Texas" {
		t.Fatalf("got %q,%v want Texas,true", state, ok)
	}

	if _, ok := SharedState([]string{"x, Austin, TX", "y, Brooklyn, NY"}); ok {
		t.Fatalf("differing states must not share")
	}
	if _, ok := SharedState([]string{"x, Austin, TX", "no state here"}); ok {
		t.Fatalf("an address without a state breaks consensus")
	}
	if _, ok := SharedState(nil); ok {
		t.Fatalf("empty list must not share")
	}
}
