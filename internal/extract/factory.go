package extract

import (
	"strings"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// signature ties a fixed template substring to the provider that prints
// it. Matching runs over diacritics-folded text; first match wins.
type signature struct {
	marker   string
	provider constants.Provider
}

var signatures = []signature{
	{"EDP Comercial", constants.ProviderEDP},
	{"Galp Power", constants.ProviderGalp},
	{"Aguas do Porto", constants.ProviderWaterPorto},
	{"Aguas de Gaia", constants.ProviderWaterGaia},
	{"EPAL - Empresa Portuguesa das Aguas Livres", constants.ProviderEPAL},
	{"MEO - Servicos de Comunicacoes e Multimedia", constants.ProviderAltice},
	{"NOS Comunicacoes", constants.ProviderNOS},
	{"Vodafone Portugal", constants.ProviderVodafone},
	{"Gold Energy", constants.ProviderGoldenEnergy},
}

type extractor func(text string) *entity.Bill

var extractors = map[constants.Provider]extractor{
	constants.ProviderEDP:          extractEDP,
	constants.ProviderGalp:         extractGalp,
	constants.ProviderWaterPorto:   extractWaterPorto,
	constants.ProviderWaterGaia:    extractWaterGaia,
	constants.ProviderEPAL:         extractEPAL,
	constants.ProviderAltice:       extractAltice,
	constants.ProviderNOS:          extractNOS,
	constants.ProviderVodafone:     extractVodafone,
	constants.ProviderGoldenEnergy: extractGoldenEnergy,
}

// Detect scans raw text for a provider signature.
func Detect(rawText string) constants.Provider {
	text := Fold(rawText)
	for _, sig := range signatures {
		if strings.Contains(text, sig.marker) {
			return sig.provider
		}
	}
	return constants.ProviderUnknown
}

// Classify detects the issuing provider and runs its field extractor.
// Returns nil when no signature matches; the caller routes those
// documents to the ignored outcome. Malformed but textual input degrades
// to empty fields, never to an error.
func Classify(rawText string) *entity.Bill {
	provider := Detect(rawText)
	if provider == constants.ProviderUnknown {
		return nil
	}
	return extractors[provider](Fold(rawText))
}
