// Package request decodes a flat JSON parameter bag into a typed payoff
// calculation request.
//
// The envelope fields strategy, lots, lotSize and spotPrices are common to
// every strategy. All remaining fields must belong to the selected
// strategy's parameter struct, and every parameter of that struct must be
// present.
package request

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/payoff"
)

// Envelope field names.
const (
	FieldStrategy = "strategy"
	FieldLots     = "lots"
	FieldLotSize  = "lotSize"
	FieldSpots    = "spotPrices"
)

// DefaultLots and DefaultLotSize apply when the fields are absent.
const (
	DefaultLots    = 1
	DefaultLotSize = 1
)

var (
	// ErrMalformed is returned when the body is not a JSON object.
	ErrMalformed = errors.New("request: malformed JSON body")

	// ErrMissingStrategy is returned when no strategy identifier is given.
	ErrMissingStrategy = errors.New("request: strategy is required")

	// ErrMissingField is returned when a strategy parameter is absent or null.
	ErrMissingField = errors.New("request: missing required field")

	// ErrUnknownField is returned for fields the strategy does not accept.
	ErrUnknownField = errors.New("request: unknown field")

	// ErrInvalidField is returned when a field has the wrong type.
	ErrInvalidField = errors.New("request: invalid field")
)

// Request is a decoded calculation request.
type Request struct {
	Strategy payoff.ID
	Position payoff.Position
	// Spots is nil when the caller left the grid to the server.
	Spots  []decimal.Decimal
	Params payoff.Strategy
}

// Reference returns the price the default grid is centred on.
func (r *Request) Reference() decimal.Decimal {
	return r.Params.Reference()
}

// Key returns a stable digest of the request for caching. Two requests
// with the same strategy, position, spots and parameter values share a key
// regardless of field order or number formatting.
func (r *Request) Key() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|", r.Strategy, r.Position.Lots, r.Position.LotSize)
	for _, s := range r.Spots {
		fmt.Fprintf(h, "%s,", s.String())
	}
	h.Write([]byte("|"))
	v := reflect.ValueOf(r.Params)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		if dv, ok := v.Field(i).Interface().(decimal.Decimal); ok {
			fmt.Fprintf(h, "%s=%s;", v.Type().Field(i).Name, dv.String())
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Decode reads and parses a JSON request body.
func Decode(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return Parse(data)
}

// FromFields builds a request from an in-memory field bag, as a CLI or form
// handler would collect it.
func FromFields(fields map[string]any) (*Request, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Parse(data)
}

// Parse decodes a JSON object into a Request.
func Parse(data []byte) (*Request, error) {
	var bag map[string]json.RawMessage
	if err := json.Unmarshal(data, &bag); err != nil || bag == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	req := &Request{
		Position: payoff.Position{Lots: DefaultLots, LotSize: DefaultLotSize},
	}

	// 1. Strategy identifier, resolved before anything strategy-specific.
	raw, ok := take(bag, FieldStrategy)
	if !ok {
		return nil, ErrMissingStrategy
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidField, FieldStrategy)
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingStrategy
	}
	id, err := payoff.ParseID(name)
	if err != nil {
		return nil, err
	}
	req.Strategy = id

	// 2. Envelope.
	if raw, ok := take(bag, FieldLots); ok {
		if err := json.Unmarshal(raw, &req.Position.Lots); err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidField, FieldLots)
		}
	}
	if raw, ok := take(bag, FieldLotSize); ok {
		if err := json.Unmarshal(raw, &req.Position.LotSize); err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidField, FieldLotSize)
		}
	}
	if raw, ok := take(bag, FieldSpots); ok {
		if err := json.Unmarshal(raw, &req.Spots); err != nil {
			return nil, fmt.Errorf("%w: %s must be an array of numbers", ErrInvalidField, FieldSpots)
		}
	}

	// 3. Strategy parameters.
	params, err := payoff.New(id)
	if err != nil {
		return nil, err
	}
	if err := decodeParams(id, bag, params); err != nil {
		return nil, err
	}
	req.Params = params
	return req, nil
}

// take removes key from bag. A JSON null counts as absent.
func take(bag map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := bag[key]
	delete(bag, key)
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// aliases maps alternate parameter names onto the canonical ones. The
// synthetic stock strategies were historically posted with premium for the
// bought leg.
var aliases = map[payoff.ID]map[string]string{
	payoff.IDSyntheticLongStock:  {"premium": "premium1"},
	payoff.IDSyntheticShortStock: {"premium": "premium1"},
}

func resolveAliases(id payoff.ID, bag map[string]json.RawMessage) error {
	for alias, canonical := range aliases[id] {
		raw, ok := bag[alias]
		if !ok {
			continue
		}
		if _, dup := bag[canonical]; dup {
			return fmt.Errorf("%w: %s accepts %s or %s, not both", ErrInvalidField, id, alias, canonical)
		}
		delete(bag, alias)
		bag[canonical] = raw
	}
	return nil
}

func decodeParams(id payoff.ID, bag map[string]json.RawMessage, dst payoff.Strategy) error {
	if err := resolveAliases(id, bag); err != nil {
		return err
	}
	fields := fieldNames(dst)

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	var unknown []string
	for k := range bag {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s does not accept %s", ErrUnknownField, id, strings.Join(unknown, ", "))
	}

	for _, f := range fields {
		raw, ok := bag[f]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%w: %s requires %s", ErrMissingField, id, f)
		}
	}

	body, err := json.Marshal(bag)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return nil
}

// Fields lists the parameter names a strategy requires, in declaration order.
func Fields(id payoff.ID) ([]string, error) {
	s, err := payoff.New(id)
	if err != nil {
		return nil, err
	}
	return fieldNames(s), nil
}

func fieldNames(s payoff.Strategy) []string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}

// IsValidation reports whether err is a client input error from this
// package or the payoff engine.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMalformed, ErrMissingStrategy, ErrMissingField, ErrUnknownField, ErrInvalidField,
		payoff.ErrUnknownStrategy, payoff.ErrInvalidPosition, payoff.ErrInvalidStrike,
		payoff.ErrInvalidPremium, payoff.ErrStrikeOrder, payoff.ErrUnequalWings,
		payoff.ErrNoSpots, payoff.ErrInvalidSpots,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
