package dialect

import (
	"github.com/tailscale/hujson"

	"jsonfix/internal/jsonv"
	"jsonfix/internal/repair"
)

// Classification is the result of Classify.
type Classification struct {
	Kind Kind
	// Steps names the repair passes that change the text when every repair
	// is enabled ("comments", "trailing-commas", "bare-keys").
	Steps []string
	// Repairable reports whether the text parses after all repairs.
	Repairable bool
}

// Classify inspects text. The checks run from strictest to loosest, so a
// document that is both JWCC and repairable is reported as JWCC.
func Classify(text string) Classification {
	var c Classification

	rep, err := repair.Run(text, repair.Options{Comments: true, TrailingCommas: true, BareKeys: true})
	if err == nil {
		for _, s := range rep.Steps {
			c.Steps = append(c.Steps, s.Name)
		}
		_, perr := jsonv.Parse(rep.Text)
		c.Repairable = perr == nil
	}

	switch {
	case isStrict(text):
		c.Kind = KindStrict
	case isJWCC(text):
		c.Kind = KindJWCC
	case c.Repairable:
		c.Kind = KindRelaxed
	default:
		c.Kind = KindInvalid
	}
	return c
}

func isStrict(text string) bool {
	_, err := jsonv.Parse(text)
	return err == nil
}

// isJWCC reports whether hujson accepts text and its standardized form is
// strict JSON. Standardize may reuse its argument, hence the fresh copy.
func isJWCC(text string) bool {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return false
	}
	return isStrict(string(std))
}
