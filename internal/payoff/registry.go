package payoff

import (
	"fmt"
	"strings"
)

// Strategy identifiers.
const (
	IDLongCall            ID = "long-call"
	IDLongPut             ID = "long-put"
	IDShortCall           ID = "short-call"
	IDShortPut            ID = "short-put"
	IDBullCallSpread      ID = "bull-call-spread"
	IDBullPutSpread       ID = "bull-put-spread"
	IDBearCallSpread      ID = "bear-call-spread"
	IDBearPutSpread       ID = "bear-put-spread"
	IDProtectivePut       ID = "protective-put"
	IDProtectiveCall      ID = "protective-call"
	IDSyntheticLongStock  ID = "synthetic-long-stock"
	IDSyntheticShortStock ID = "synthetic-short-stock"
	IDLongStraddle        ID = "long-straddle"
	IDShortStraddle       ID = "short-straddle"
	IDLongStrangle        ID = "long-strangle"
	IDShortStrangle       ID = "short-strangle"
	IDIronCondor          ID = "iron-condor"
	IDIronButterfly       ID = "iron-butterfly"
	IDCallButterfly       ID = "call-butterfly"
	IDCalendarSpread      ID = "calendar-spread"
)

// Outlook is the market view a strategy expresses.
type Outlook string

const (
	Bullish  Outlook = "bullish"
	Bearish  Outlook = "bearish"
	Neutral  Outlook = "neutral"
	Volatile Outlook = "volatile"
)

// Info describes a registered strategy.
type Info struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Outlook     Outlook `json:"outlook"`
	Approximate bool    `json:"approximate,omitempty"`
}

type entry struct {
	info Info
	new  func() Strategy
}

// catalog is ordered the way strategies are presented to users.
var catalog = []entry{
	{Info{IDLongCall, "Long Call", Bullish, false}, func() Strategy { return &LongCall{} }},
	{Info{IDLongPut, "Long Put", Bearish, false}, func() Strategy { return &LongPut{} }},
	{Info{IDShortCall, "Short Call", Bearish, false}, func() Strategy { return &ShortCall{} }},
	{Info{IDShortPut, "Short Put", Bullish, false}, func() Strategy { return &ShortPut{} }},
	{Info{IDBullCallSpread, "Bull Call Spread", Bullish, false}, func() Strategy { return &BullCallSpread{} }},
	{Info{IDBullPutSpread, "Bull Put Spread", Bullish, false}, func() Strategy { return &BullPutSpread{} }},
	{Info{IDBearCallSpread, "Bear Call Spread", Bearish, false}, func() Strategy { return &BearCallSpread{} }},
	{Info{IDBearPutSpread, "Bear Put Spread", Bearish, false}, func() Strategy { return &BearPutSpread{} }},
	{Info{IDProtectivePut, "Protective Put", Bullish, false}, func() Strategy { return &ProtectivePut{} }},
	{Info{IDProtectiveCall, "Protective Call", Bearish, false}, func() Strategy { return &ProtectiveCall{} }},
	{Info{IDSyntheticLongStock, "Synthetic Long Stock", Bullish, false}, func() Strategy { return &SyntheticLongStock{} }},
	{Info{IDSyntheticShortStock, "Synthetic Short Stock", Bearish, false}, func() Strategy { return &SyntheticShortStock{} }},
	{Info{IDLongStraddle, "Long Straddle", Volatile, false}, func() Strategy { return &LongStraddle{} }},
	{Info{IDShortStraddle, "Short Straddle", Neutral, false}, func() Strategy { return &ShortStraddle{} }},
	{Info{IDLongStrangle, "Long Strangle", Volatile, false}, func() Strategy { return &LongStrangle{} }},
	{Info{IDShortStrangle, "Short Strangle", Neutral, false}, func() Strategy { return &ShortStrangle{} }},
	{Info{IDIronCondor, "Iron Condor", Neutral, false}, func() Strategy { return &IronCondor{} }},
	{Info{IDIronButterfly, "Iron Butterfly", Neutral, false}, func() Strategy { return &IronButterfly{} }},
	{Info{IDCallButterfly, "Call Butterfly", Neutral, false}, func() Strategy { return &CallButterfly{} }},
	{Info{IDCalendarSpread, "Calendar Spread", Neutral, true}, func() Strategy { return &CalendarSpread{} }},
}

var byID = func() map[ID]entry {
	m := make(map[ID]entry, len(catalog))
	for _, e := range catalog {
		m[e.info.ID] = e
	}
	return m
}()

// ParseID normalises an identifier or display name ("Long Call",
// "long_call", "LONG-CALL") to its canonical ID.
func ParseID(s string) (ID, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.Join(strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
	id := ID(norm)
	if _, ok := byID[id]; !ok || norm == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return id, nil
}

// New returns a pointer to a zero parameter struct for id, ready to be
// decoded into.
func New(id ID) (Strategy, error) {
	e, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	return e.new(), nil
}

// Describe returns catalog information for id.
func Describe(id ID) (Info, bool) {
	e, ok := byID[id]
	return e.info, ok
}

// IDs lists every registered identifier in catalog order.
func IDs() []ID {
	out := make([]ID, len(catalog))
	for i, e := range catalog {
		out[i] = e.info.ID
	}
	return out
}

// Catalog lists every registered strategy in catalog order.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	for i, e := range catalog {
		out[i] = e.info
	}
	return out
}
