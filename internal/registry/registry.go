// Package registry implements the Domains name registry: a mapping from
// names under a fixed top-level suffix to their owners and records, paid for
// into a treasury that only the registry owner may withdraw.
//
// A Registry is not safe for concurrent use. Its host (a chain) serializes
// every call, so each operation observes and commits state in a single total
// order.
package registry

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	MinNameLength = 3
	MaxNameLength = 10
)

// RecordPolicy controls who may change the record of a registered name.
type RecordPolicy string

const (
	// RecordPolicyOwner allows only the domain owner to set its record
	RecordPolicyOwner RecordPolicy = "owner"
	// RecordPolicyOpen allows any caller to set the record of a registered name
	RecordPolicyOpen RecordPolicy = "open"
)

// ParseRecordPolicy accepts "owner", "open" or "" (owner).
func ParseRecordPolicy(s string) (RecordPolicy, error) {
	switch RecordPolicy(s) {
	case "", RecordPolicyOwner:
		return RecordPolicyOwner, nil
	case RecordPolicyOpen:
		return RecordPolicyOpen, nil
	default:
		return "", fmt.Errorf("unknown record policy %q (expected %q or %q)", s, RecordPolicyOwner, RecordPolicyOpen)
	}
}

// Record is the registry entry of one name.
type Record struct {
	Name   string         `json:"name"`
	Owner  common.Address `json:"owner"`
	Record string         `json:"record,omitempty"`
}

// Registry is the state of one deployed registry.
type Registry struct {
	tld          string
	owner        common.Address
	pricing      Pricing
	recordPolicy RecordPolicy

	domains  map[string]*Record
	names    []string
	treasury *big.Int
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithPricing sets the price schedule.
func WithPricing(p Pricing) Option {
	return func(r *Registry) {
		r.pricing = p.clone()
	}
}

// WithRecordPolicy sets who may change records.
func WithRecordPolicy(p RecordPolicy) Option {
	return func(r *Registry) {
		r.recordPolicy = p
	}
}

// New creates an empty registry for tld owned by owner.
func New(tld string, owner common.Address, opts ...Option) (*Registry, error) {
	if !isLowerAlnum(tld) {
		return nil, fmt.Errorf("invalid top-level suffix %q: must be non-empty lowercase alphanumeric", tld)
	}

	r := &Registry{
		tld:          tld,
		owner:        owner,
		pricing:      DefaultPricing(),
		recordPolicy: RecordPolicyOwner,
		domains:      make(map[string]*Record),
		treasury:     new(big.Int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ValidName reports whether name may be registered.
func ValidName(name string) bool {
	return len(name) >= MinNameLength && len(name) <= MaxNameLength && isLowerAlnum(name)
}

func isLowerAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func (r *Registry) TLD() string {
	return r.tld
}

func (r *Registry) Owner() common.Address {
	return r.owner
}

func (r *Registry) IsOwner(addr common.Address) bool {
	return addr == r.owner
}

func (r *Registry) RecordPolicy() RecordPolicy {
	return r.recordPolicy
}

// Treasury returns a copy of the accumulated registration payments.
func (r *Registry) Treasury() *big.Int {
	return new(big.Int).Set(r.treasury)
}

// Price returns the registration price for name.
func (r *Registry) Price(name string) (*big.Int, error) {
	if !ValidName(name) {
		return nil, &OpError{Op: "price", Name: name, Err: ErrInvalidName}
	}
	return r.pricing.PriceOf(name), nil
}

// Register gives name to caller in exchange for payment. The full payment is
// credited to the treasury.
func (r *Registry) Register(caller common.Address, name string, payment *big.Int) error {
	if !ValidName(name) {
		return &OpError{Op: "register", Name: name, Err: ErrInvalidName}
	}
	if _, taken := r.domains[name]; taken {
		return &OpError{Op: "register", Name: name, Err: ErrAlreadyRegistered}
	}
	if payment == nil || payment.Cmp(r.pricing.PriceOf(name)) < 0 {
		return &OpError{Op: "register", Name: name, Err: ErrInsufficientPayment}
	}

	r.domains[name] = &Record{Name: name, Owner: caller}
	r.names = append(r.names, name)
	r.treasury.Add(r.treasury, payment)
	return nil
}

// SetRecord replaces the record of name.
func (r *Registry) SetRecord(caller common.Address, name, value string) error {
	rec, ok := r.domains[name]
	switch r.recordPolicy {
	case RecordPolicyOpen:
		if !ok {
			return &OpError{Op: "setRecord", Name: name, Err: ErrNotRegistered}
		}
	default:
		// unregistered names are owned by the zero address
		if !ok || rec.Owner != caller {
			return &OpError{Op: "setRecord", Name: name, Err: ErrUnauthorized}
		}
	}

	rec.Record = value
	return nil
}

// GetAddress returns the owner of name, or the zero address when name is not
// registered.
func (r *Registry) GetAddress(name string) common.Address {
	if rec, ok := r.domains[name]; ok {
		return rec.Owner
	}
	return common.Address{}
}

// GetRecord returns the record of name, or "" when it has none.
func (r *Registry) GetRecord(name string) string {
	if rec, ok := r.domains[name]; ok {
		return rec.Record
	}
	return ""
}

// Lookup returns a copy of the entry for name.
func (r *Registry) Lookup(name string) (Record, bool) {
	rec, ok := r.domains[name]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Names lists registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Withdraw empties the treasury and returns the amount the host must pay out
// to caller. Only the registry owner may withdraw.
func (r *Registry) Withdraw(caller common.Address) (*big.Int, error) {
	if caller != r.owner {
		return nil, &OpError{Op: "withdraw", Err: ErrUnauthorized}
	}
	amount := r.treasury
	r.treasury = new(big.Int)
	return amount, nil
}

// Snapshot is the serializable state of a Registry.
type Snapshot struct {
	TLD          string                  `json:"tld"`
	Owner        common.Address          `json:"owner"`
	RecordPolicy RecordPolicy            `json:"recordPolicy"`
	Base         *hexutil.Big            `json:"base"`
	Tiers        map[string]*hexutil.Big `json:"tiers,omitempty"`
	Domains      []Record                `json:"domains"`
	Treasury     *hexutil.Big            `json:"treasury"`
}

// Snapshot copies the full registry state.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		TLD:          r.tld,
		Owner:        r.owner,
		RecordPolicy: r.recordPolicy,
		Base:         (*hexutil.Big)(new(big.Int).Set(DefaultFee)),
		Domains:      make([]Record, 0, len(r.names)),
		Treasury:     (*hexutil.Big)(r.Treasury()),
	}
	if r.pricing.Base != nil {
		s.Base = (*hexutil.Big)(new(big.Int).Set(r.pricing.Base))
	}
	if len(r.pricing.Tiers) > 0 {
		s.Tiers = make(map[string]*hexutil.Big, len(r.pricing.Tiers))
		for length, price := range r.pricing.Tiers {
			s.Tiers[strconv.Itoa(length)] = (*hexutil.Big)(new(big.Int).Set(price))
		}
	}
	for _, name := range r.names {
		s.Domains = append(s.Domains, *r.domains[name])
	}
	return s
}

// FromSnapshot rebuilds a registry from a snapshot.
func FromSnapshot(s Snapshot) (*Registry, error) {
	policy, err := ParseRecordPolicy(string(s.RecordPolicy))
	if err != nil {
		return nil, err
	}

	pricing := DefaultPricing()
	if s.Base != nil {
		pricing.Base = new(big.Int).Set(s.Base.ToInt())
	}
	for key, price := range s.Tiers {
		length, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid price tier %q: %w", key, err)
		}
		if price == nil {
			return nil, fmt.Errorf("price tier %q has no price", key)
		}
		if pricing.Tiers == nil {
			pricing.Tiers = make(map[int]*big.Int)
		}
		pricing.Tiers[length] = new(big.Int).Set(price.ToInt())
	}

	r, err := New(s.TLD, s.Owner, WithPricing(pricing), WithRecordPolicy(policy))
	if err != nil {
		return nil, err
	}
	for _, rec := range s.Domains {
		if _, dup := r.domains[rec.Name]; dup {
			return nil, fmt.Errorf("snapshot lists %q twice", rec.Name)
		}
		entry := rec
		r.domains[rec.Name] = &entry
		r.names = append(r.names, rec.Name)
	}
	if s.Treasury != nil {
		r.treasury = new(big.Int).Set(s.Treasury.ToInt())
	}
	return r, nil
}
