package filter

// domain is the semantic unit domain of a record field. It decides
// which literal kinds a comparison against the field may use and how
// the literal is normalized to the field's native unit.
type domain int

const (
	domainNumber domain = iota // plain numbers only
	domainDays                 // plain numbers (days) or durations
	domainRatio                // plain numbers (fractions) or percents
)

// fieldDomains is the fixed field vocabulary. An identifier outside
// this map fails compilation rather than silently matching nothing.
var fieldDomains = map[string]domain{
	"dte":    domainDays,
	"strike": domainNumber,
	"volume": domainNumber,
	"price":  domainNumber,
	"return": domainRatio,
	"spot":   domainNumber,
}

const secondsPerDay = 86400

// normalize converts a literal token into the target field's native
// unit. It is pure: no clock, no timezone, durations are relative
// magnitudes. Incompatible pairings are compile errors, never a
// silent false at evaluation time.
func normalize(tok Token, field string, dom domain) (float64, error) {
	switch tok.Type {
	case TokenNumber:
		// dimensionless, used directly in the field's natural unit
		return tok.Num, nil
	case TokenPercent:
		if dom != domainRatio {
			return 0, &CompileError{Field: field, Literal: tok.Text, Reason: "cannot compare against percent literal"}
		}
		return tok.Num / 100, nil
	case TokenDuration:
		if dom != domainDays {
			return 0, &CompileError{Field: field, Literal: tok.Text, Reason: "cannot compare against duration literal"}
		}
		return tok.Num / secondsPerDay, nil
	}
	return 0, &CompileError{Field: field, Literal: tok.Text, Reason: "unsupported literal"}
}
