package x2ap

import (
	"github.com/thebagchi/asn1enum-go/lib/constraint"
	"github.com/thebagchi/asn1enum-go/lib/enumerated"
)

// Links-to-log ::= ENUMERATED { uplink, downlink, both-uplink-and-downlink, ... }
type LinksToLog int64

const (
	LinksToLogUplink                LinksToLog = 0
	LinksToLogDownlink              LinksToLog = 1
	LinksToLogBothUplinkAndDownlink LinksToLog = 2
)

var SPCLinksToLog = constraint.MustNew("Links-to-log", []constraint.Enumerator{
	{Name: "uplink", Value: 0},
	{Name: "downlink", Value: 1},
	{Name: "both-uplink-and-downlink", Value: 2},
}, true)

var DEFLinksToLog = enumerated.MustNew(SPCLinksToLog)
