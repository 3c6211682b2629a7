package constants

import "testing"

func TestProviderRoundTrip(t *testing.T) {
	providers := []Provider{
		ProviderEDP, ProviderGalp, ProviderWaterPorto, ProviderWaterGaia,
		ProviderEPAL, ProviderAltice, ProviderNOS, ProviderVodafone,
		ProviderGoldenEnergy,
	}
	for _, p := range providers {
		parsed, ok := ParseProvider(p.String())
		if !ok || parsed != p {
			t.Errorf("ParseProvider(%q): got %v, %v", p.String(), parsed, ok)
		}
		if p.DisplayName() == "" {
			t.Errorf("%v: missing display name", p)
		}
		if tag := p.ExceptionTag(); len(tag) == 0 || tag[0] != '#' {
			t.Errorf("%v: bad exception tag %q", p, tag)
		}
	}

	if _, ok := ParseProvider("NOT_A_PROVIDER"); ok {
		t.Error("ParseProvider: unknown name must not parse")
	}
}

func TestServiceTypeCategory(t *testing.T) {
	tests := []struct {
		service  ServiceType
		category string
	}{
		{ServiceWater, "Água"},
		{ServiceElectricity, "Eletricidade"},
		{ServiceTelecom, "Telecomunicações"},
		{ServiceUnknown, ""},
	}
	for _, tt := range tests {
		if got := tt.service.Category(); got != tt.category {
			t.Errorf("%v.Category(): got %q, want %q", tt.service, got, tt.category)
		}
	}
}
