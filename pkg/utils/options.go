package utils

import (
	"fmt"

	"github.com/servicepro/servicepro-backend/app/models"
)

// Metier names as stored in the taxonomy seed.
const (
	MetierMenuiserie  = "menuiserie"
	MetierElectricite = "electricite"
	MetierPeinture    = "peinture"
)

var ValidMetiers = []string{MetierMenuiserie, MetierElectricite, MetierPeinture}

func IsValidMetier(m string) bool {
	for _, v := range ValidMetiers {
		if m == v {
			return true
		}
	}
	return false
}

// OptionGroup describes one option group of a metier: its allowed option
// names, whether a listing must enable at least one of them, and which
// options are allowed a zero price.
type OptionGroup struct {
	Name          string
	Required      bool
	Options       []string
	ZeroPriceable []string
}

// optionSchemas is the per-metier write-time schema for listing options.
// The raw "brut" finish is the only option that may carry a zero price.
var optionSchemas = map[string][]OptionGroup{
	MetierMenuiserie: {
		{Name: "materiau", Required: true, Options: []string{"chene", "pin", "hetre", "mdf"}},
		{Name: "finition", Required: true, Options: []string{"brut", "vernis", "laque", "huile"}, ZeroPriceable: []string{"brut"}},
	},
	MetierElectricite: {
		{Name: "type_travaux", Required: true, Options: []string{"installation", "renovation", "depannage", "mise_aux_normes"}},
	},
	MetierPeinture: {
		{Name: "type_peinture", Required: true, Options: []string{"acrylique", "glycero", "naturelle"}},
		{Name: "finition", Required: true, Options: []string{"mat", "satin", "brillant"}},
	},
}

func (g OptionGroup) allows(name string) bool {
	for _, o := range g.Options {
		if o == name {
			return true
		}
	}
	return false
}

func (g OptionGroup) zeroPriceAllowed(name string) bool {
	for _, o := range g.ZeroPriceable {
		if o == name {
			return true
		}
	}
	return false
}

// ValidateServiceOptions checks a listing's options against the metier
// schema: every option must belong to a known group and carry a known name,
// every enabled option must be priced unless the schema allows zero for it,
// and every required group must have at least one enabled option.
func ValidateServiceOptions(metier string, opts []models.ServiceOptionInput) error {
	groups, ok := optionSchemas[metier]
	if !ok {
		return fmt.Errorf("unknown metier %q", metier)
	}

	byGroup := make(map[string]OptionGroup, len(groups))
	for _, g := range groups {
		byGroup[g.Name] = g
	}

	enabledPerGroup := make(map[string]int)
	for _, opt := range opts {
		g, ok := byGroup[opt.Group]
		if !ok {
			return fmt.Errorf("unknown option group %q for metier %q", opt.Group, metier)
		}
		if !g.allows(opt.Name) {
			return fmt.Errorf("unknown option %q in group %q", opt.Name, opt.Group)
		}
		if !opt.Enabled {
			continue
		}
		if opt.Price <= 0 && !g.zeroPriceAllowed(opt.Name) {
			return fmt.Errorf("enabled option %q must have a price", opt.Name)
		}
		if opt.Price < 0 {
			return fmt.Errorf("option %q has a negative price", opt.Name)
		}
		enabledPerGroup[opt.Group]++
	}

	for _, g := range groups {
		if g.Required && enabledPerGroup[g.Name] == 0 {
			return fmt.Errorf("at least one enabled option required in group %q", g.Name)
		}
	}
	return nil
}
