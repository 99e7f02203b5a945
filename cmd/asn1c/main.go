// Command asn1c encodes and decodes ENUMERATED values with every ASN.1
// encoding rule.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	asn1c "github.com/thebagchi/asn1enum-go"
	"github.com/thebagchi/asn1enum-go/lib/enumerated"
	"github.com/thebagchi/asn1enum-go/lib/logging"
	"github.com/thebagchi/asn1enum-go/lib/x2ap"
)

var logger = logging.New("asn1c")

var registry map[string]enumerated.Descriptor

// loadTypes registers the X2AP bindings and the types defined in filename.
func loadTypes(filename string) error {
	registry = map[string]enumerated.Descriptor{}
	for _, d := range x2ap.Descriptors() {
		registry[d.Name()] = d
	}
	if len(filename) == 0 {
		return nil
	}
	specs, e := asn1c.Parse(filename)
	if e != nil {
		return e
	}
	for _, spec := range specs {
		if _, ok := registry[spec.Name()]; ok {
			return fmt.Errorf("%s: type %s is already defined", filename, spec.Name())
		}
		d, e := enumerated.New(spec, enumerated.WithLogger(logger))
		if e != nil {
			return e
		}
		registry[spec.Name()] = d
	}
	logger.Debug("types loaded", zap.String("file", filename), zap.Int("count", len(specs)))
	return nil
}

func lookupType(name string) (enumerated.Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q, see 'asn1c list'", name)
	}
	return d, nil
}

var app = &cli.App{
	Name:  "asn1c",
	Usage: "Encode and decode ASN.1 ENUMERATED values.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "YAML `file` of ENUMERATED definitions.",
			EnvVars: []string{"ASN1C_FILE"},
		},
	},
	Before: func(c *cli.Context) error {
		return loadTypes(c.String("file"))
	},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func main() {
	sort.Sort(cli.CommandsByName(app.Commands))
	e := app.Run(os.Args)
	if e != nil {
		logger.Fatal("asn1c", zap.Error(e))
	}
}
