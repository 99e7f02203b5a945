package asn1c_go

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

// Definition is an ENUMERATED type as written in a definitions file:
//
//	# x2ap.yaml
//	- name: Links-to-log
//	  extensible: true
//	  root: [uplink, downlink, both-uplink-and-downlink]
//	  additions: [summary(7)]
//
// Items use ASN.1 notation, an identifier with an optional number.
type Definition struct {
	Name       string   `yaml:"name"`
	Extensible bool     `yaml:"extensible"`
	Root       []string `yaml:"root"`
	Additions  []string `yaml:"additions"`
}

// Parse reads ENUMERATED definitions from a YAML file.
func Parse(filename string) ([]*constraint.Spec, error) {
	data, err := os.ReadFile(filename)
	if nil != err {
		return nil, err
	}
	specs, err := ParseBytes(data)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return specs, nil
}

// ParseBytes reads ENUMERATED definitions from YAML text.
// Every invalid definition is reported, not only the first.
func ParseBytes(data []byte) (specs []*constraint.Spec, e error) {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); nil != err {
		return nil, err
	}
	for i, def := range defs {
		spec, err := def.Spec()
		if nil != err {
			e = multierr.Append(e, fmt.Errorf("definition %d: %w", i, err))
			continue
		}
		specs = append(specs, spec)
	}
	if nil != e {
		return nil, e
	}
	return specs, nil
}

// Spec numbers the items the way X.680 does and builds the constraint model.
// Unnumbered root items take the smallest non-negative integers not already
// used; an unnumbered addition takes one more than the largest value so far.
func (def Definition) Spec() (*constraint.Spec, error) {
	var errs error
	used := map[int64]bool{}
	var largest int64 = -1
	mark := func(v int64) {
		used[v] = true
		if v > largest {
			largest = v
		}
	}

	root := make([]constraint.Enumerator, len(def.Root))
	numbered := make([]bool, len(def.Root))
	for i, item := range def.Root {
		name, value, ok, err := parseItem(item)
		if nil != err {
			errs = multierr.Append(errs, err)
			continue
		}
		root[i].Name = name
		if ok {
			root[i].Value, numbered[i] = value, true
			mark(value)
		}
	}
	var next int64
	for i := range root {
		if numbered[i] {
			continue
		}
		for used[next] {
			next++
		}
		root[i].Value = next
		mark(next)
	}

	additions := make([]constraint.Enumerator, 0, len(def.Additions))
	for _, item := range def.Additions {
		name, value, ok, err := parseItem(item)
		if nil != err {
			errs = multierr.Append(errs, err)
			continue
		}
		if !ok {
			value = largest + 1
		}
		mark(value)
		additions = append(additions, constraint.Enumerator{Name: name, Value: value})
	}
	if nil != errs {
		return nil, fmt.Errorf("ENUMERATED %s: %w", def.Name, errs)
	}
	return constraint.New(def.Name, root, def.Extensible, additions...)
}

// parseItem splits "name(5)" into its identifier and number.
func parseItem(item string) (name string, value int64, numbered bool, e error) {
	item = strings.TrimSpace(item)
	open := strings.IndexByte(item, '(')
	if open < 0 {
		return item, 0, false, nil
	}
	if !strings.HasSuffix(item, ")") {
		return "", 0, false, fmt.Errorf("malformed item %q", item)
	}
	value, e = strconv.ParseInt(strings.TrimSpace(item[open+1:len(item)-1]), 10, 64)
	if nil != e {
		return "", 0, false, fmt.Errorf("malformed number in %q: %w", item, e)
	}
	return strings.TrimSpace(item[:open]), value, true, nil
}
