package constants

// Provider identifies the utility company that issued a document.
type Provider int

const (
	ProviderUnknown Provider = iota
	ProviderEDP
	ProviderGalp
	ProviderWaterPorto
	ProviderWaterGaia
	ProviderEPAL
	ProviderAltice
	ProviderNOS
	ProviderVodafone
	ProviderGoldenEnergy
)

var providerNames = map[Provider]string{
	ProviderUnknown:      "UNKNOWN",
	ProviderEDP:          "EDP",
	ProviderGalp:         "GALP",
	ProviderWaterPorto:   "WATER_PORTO",
	ProviderWaterGaia:    "WATER_GAIA",
	ProviderEPAL:         "EPAL",
	ProviderAltice:       "TELECOM_ALTICE",
	ProviderNOS:          "NOS",
	ProviderVodafone:     "TELECOM_VODAFONE",
	ProviderGoldenEnergy: "GOLDEN_ENERGY",
}

func (p Provider) String() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// displayNames are the short names used inside canonical output file names.
var displayNames = map[Provider]string{
	ProviderEDP:          "EDP",
	ProviderGalp:         "Galp",
	ProviderWaterPorto:   "Aguas",
	ProviderWaterGaia:    "Aguas",
	ProviderEPAL:         "EPAL",
	ProviderAltice:       "Altice(MEO)",
	ProviderNOS:          "NOS",
	ProviderVodafone:     "Vodafone",
	ProviderGoldenEnergy: "GoldEnergy",
}

// DisplayName returns the short provider name used in output file names.
func (p Provider) DisplayName() string {
	return displayNames[p]
}

// exceptionTags key the exception registry. Stable values, stored in the
// rules file.
var exceptionTags = map[Provider]string{
	ProviderEDP:          "#EDP",
	ProviderGalp:         "#GALP",
	ProviderWaterPorto:   "#AGUAS_PORTO",
	ProviderWaterGaia:    "#AGUAS_GAIA",
	ProviderEPAL:         "#EPAL",
	ProviderAltice:       "#ALTICE",
	ProviderNOS:          "#NOS",
	ProviderVodafone:     "#VODAFONE",
	ProviderGoldenEnergy: "#GOLD_ENERGY",
}

// ExceptionTag returns the registry key for the provider, or "" for
// providers that cannot carry exception rules.
func (p Provider) ExceptionTag() string {
	return exceptionTags[p]
}

// ParseProvider resolves a stored provider name back to its enum value.
func ParseProvider(name string) (Provider, bool) {
	for p, n := range providerNames {
		if n == name {
			return p, true
		}
	}
	return ProviderUnknown, false
}

// ServiceType is the kind of utility a bill charges for.
type ServiceType int

const (
	ServiceUnknown ServiceType = iota
	ServiceElectricity
	ServiceWater
	ServiceTelecom
)

var serviceNames = map[ServiceType]string{
	ServiceUnknown:     "UNKNOWN",
	ServiceElectricity: "ELECTRICITY",
	ServiceWater:       "WATER",
	ServiceTelecom:     "TELECOM",
}

func (s ServiceType) String() string {
	if name, ok := serviceNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseServiceType resolves a stored service name back to its enum value.
func ParseServiceType(name string) (ServiceType, bool) {
	for s, n := range serviceNames {
		if n == name {
			return s, true
		}
	}
	return ServiceUnknown, false
}

// Category returns the accounting category label used on the accounting
// summary sheet.
func (s ServiceType) Category() string {
	switch s {
	case ServiceWater:
		return "Água"
	case ServiceTelecom:
		return "Telecomunicações"
	case ServiceElectricity:
		return "Eletricidade"
	}
	return ""
}
