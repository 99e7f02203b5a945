package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/thebagchi/asn1enum-go/lib/enumerated"
)

// parseValue accepts an identifier or a number.
func parseValue(d enumerated.Descriptor, s string) (int64, error) {
	if e, ok := d.Spec().LookupName(s); ok {
		return e.Value, nil
	}
	v, e := strconv.ParseInt(s, 0, 64)
	if e != nil {
		return 0, fmt.Errorf("%q is neither an identifier of %s nor a number", s, d.Name())
	}
	return v, nil
}

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "type",
		Aliases:  []string{"t"},
		Usage:    "ASN.1 type `name`.",
		Required: true,
	}
}

func ruleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "rule",
		Usage: "Encoding `rule`: BER, DER, XER, UPER, APER.",
		Value: enumerated.UPER.String(),
	}
}

func init() {
	defineCommand(&cli.Command{
		Name:  "encode",
		Usage: "Encode a value.",
		Flags: []cli.Flag{
			typeFlag(),
			ruleFlag(),
			&cli.StringFlag{
				Name:     "value",
				Usage:    "Enumerator identifier or number.",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			d, e := lookupType(c.String("type"))
			if e != nil {
				return e
			}
			rule, e := enumerated.ParseRule(c.String("rule"))
			if e != nil {
				return e
			}
			v, e := parseValue(d, c.String("value"))
			if e != nil {
				return e
			}
			encoding, e := d.Encode(rule, v)
			if e != nil {
				return e
			}
			if rule == enumerated.XER {
				fmt.Fprintln(c.App.Writer, string(encoding.Bytes))
			} else {
				fmt.Fprintln(c.App.Writer, hex.EncodeToString(encoding.Bytes))
			}
			fmt.Fprintf(c.App.ErrWriter, "%d bits\n", encoding.Bits)
			return nil
		},
	})
}

func init() {
	defineCommand(&cli.Command{
		Name:      "decode",
		Usage:     "Decode a value.",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			typeFlag(),
			ruleFlag(),
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Octets to skip before the value.",
			},
		},
		Action: func(c *cli.Context) error {
			d, e := lookupType(c.String("type"))
			if e != nil {
				return e
			}
			rule, e := enumerated.ParseRule(c.String("rule"))
			if e != nil {
				return e
			}
			input := strings.Join(c.Args().Slice(), " ")
			var data []byte
			if rule == enumerated.XER {
				data = []byte(input)
			} else if data, e = hex.DecodeString(strings.ReplaceAll(input, " ", "")); e != nil {
				return fmt.Errorf("INPUT must be hexadecimal: %w", e)
			}

			result, e := d.Decode(rule, data, c.Int("offset"))
			if e != nil {
				return e
			}
			if e = d.Print(c.App.Writer, result.Value.Ordinal); e != nil {
				return e
			}
			kind := "root"
			if result.Value.IsExtension() {
				kind = "extension"
			}
			fmt.Fprintf(c.App.Writer, "\n%s value, %d octets, %d bits\n", kind, result.Bytes, result.Bits)
			return nil
		},
	})
}

func init() {
	defineCommand(&cli.Command{
		Name:  "check",
		Usage: "Check a value against the type constraints.",
		Flags: []cli.Flag{
			typeFlag(),
			&cli.StringFlag{
				Name:     "value",
				Usage:    "Enumerator identifier or number.",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			d, e := lookupType(c.String("type"))
			if e != nil {
				return e
			}
			v, e := parseValue(d, c.String("value"))
			if e != nil {
				return e
			}
			if e = d.CheckConstraints(v); e != nil {
				return e
			}
			if e = d.Print(c.App.Writer, v); e != nil {
				return e
			}
			fmt.Fprintln(c.App.Writer)
			return nil
		},
	})
}
