package statusboard

import "testing"

// TestFlightCategory verifies category derivation against representative
// reports, including the band edges.
func TestFlightCategory(t *testing.T) {
	cases := []struct {
		name       string
		metar      string
		wantCat    string
		wantReason string
	}{
		{
			"clear vfr",
			"KPIT 281955Z 22015KT 10SM FEW250 26/14 A2999",
			CategoryVFR, "",
		},
		{
			"scattered layers are not a ceiling",
			"KIPT 281954Z 31005KT 10SM SCT040 24/12 A3001",
			CategoryVFR, "",
		},
		{
			"ifr ceiling and visibility",
			"KMDT 281953Z 08004KT 2SM BR OVC008 17/16 A3005",
			CategoryIFR, "ceiling 800ft, vis 2SM",
		},
		{
			"lifr fog with vertical visibility",
			"KAGC 281947Z 00000KT 1/2SM FG VV002 14/14 A3011",
			CategoryLIFR, "ceiling 200ft, vis 0.5SM",
		},
		{
			"mixed-number visibility drives ifr",
			"KLBE 281945Z 27008KT 2 1/2SM -RA BKN012 19/17 A2998",
			CategoryIFR, "ceiling 1200ft, vis 2.5SM",
		},
		{
			"mvfr haze",
			"KPHL 281954Z 19006KT 4SM HZ BKN025 28/18 A2992",
			CategoryMVFR, "ceiling 2500ft, vis 4SM",
		},
		{
			"ceiling 500 is ifr not lifr",
			"KERI 281951Z 09010KT 6SM BR OVC005 16/15 A3010",
			CategoryIFR, "ceiling 500ft, vis 6SM",
		},
		{
			"visibility 5 is still mvfr",
			"KABE 281951Z 14003KT 5SM HZ CLR 27/19 A2994",
			CategoryMVFR, "vis 5SM",
		},
		{
			"ceiling 3000 is vfr",
			"KAVP 281953Z 29007KT 6SM OVC030 22/15 A3000",
			CategoryVFR, "",
		},
		{
			"lowest of several layers wins",
			"KJST 281953Z 26012KT 3SM BKN040 OVC009 BKN015 18/16 A2997",
			CategoryIFR, "ceiling 900ft, vis 3SM",
		},
		{
			"nothing to parse",
			"KXYZ 281955Z AUTO RMK AO2",
			CategoryUnknown, "",
		},
	}

	for _, tc := range cases {
		cat, reason := FlightCategory(tc.metar)
		if cat != tc.wantCat || reason != tc.wantReason {
			t.Fatalf("%s: expected (%s, %q), got (%s, %q)", tc.name, tc.wantCat, tc.wantReason, cat, reason)
		}
	}
}

// TestStatusForCategory verifies the category-to-status mapping.
func TestStatusForCategory(t *testing.T) {
	cases := []struct {
		cat  string
		want string
	}{
		{CategoryVFR, StatusOK},
		{CategoryMVFR, StatusImpact},
		{CategoryIFR, StatusImpact},
		{CategoryLIFR, StatusImpact},
		{"lifr", StatusImpact},
		{CategoryUnknown, StatusOK},
		{"", StatusOK},
	}
	for _, tc := range cases {
		if got := StatusForCategory(tc.cat); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.cat, tc.want, got)
		}
	}
}

// TestObservationTime verifies the ddhhmmZ group formatting.
func TestObservationTime(t *testing.T) {
	if got := ObservationTime("KPIT 281955Z 22015KT 10SM FEW250 26/14 A2999"); got != "28 19:55Z" {
		t.Fatalf("expected %q, got %q", "28 19:55Z", got)
	}
	if got := ObservationTime("no time group here"); got != "" {
		t.Fatalf("expected empty observation time, got %q", got)
	}
}
