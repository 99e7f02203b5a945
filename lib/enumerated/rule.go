package enumerated

import (
	"fmt"
	"strings"
)

// Rule selects an ASN.1 encoding rule.
type Rule uint8

// Encoding rules.
const (
	BER Rule = iota
	DER
	XER
	UPER
	APER
)

var ruleNames = [...]string{
	BER:  "BER",
	DER:  "DER",
	XER:  "XER",
	UPER: "UPER",
	APER: "APER",
}

// Rules lists every supported rule.
func Rules() []Rule {
	return []Rule{BER, DER, XER, UPER, APER}
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// ParseRule parses a rule name, ignoring case.
func ParseRule(s string) (Rule, error) {
	for i, name := range ruleNames {
		if strings.EqualFold(s, name) {
			return Rule(i), nil
		}
	}
	return 0, fmt.Errorf("unknown encoding rule %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	if int(r) >= len(ruleNames) {
		return nil, fmt.Errorf("unknown encoding rule %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(text []byte) (e error) {
	*r, e = ParseRule(string(text))
	return e
}
