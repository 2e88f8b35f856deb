package config

import (
	"fmt"

	"github.com/theirongolddev/reimburse/internal/reimburse"
)

// ResolvePolicy builds the policy for the configured variant with any rate
// overrides applied. A non-empty variant argument (from a CLI flag) takes
// precedence over the config value.
func ResolvePolicy(cfg Config, variant string) (reimburse.Policy, error) {
	name := cfg.Policy.Variant
	if variant != "" {
		name = variant
	}

	v, err := reimburse.ParseVariant(name)
	if err != nil {
		return reimburse.Policy{}, err
	}

	p := reimburse.DefaultPolicy(v)
	cfg.Policy.Overrides.apply(&p)

	if err := p.Validate(); err != nil {
		return reimburse.Policy{}, fmt.Errorf("policy overrides: %w", err)
	}
	return p, nil
}

// apply patches the policy in place. Penalties are ordered heavy then light.
func (o PolicyOverrides) apply(p *reimburse.Policy) {
	if o.Tier1Multiplier != nil && len(p.ReceiptTiers) > 0 {
		p.ReceiptTiers[0].Rate = *o.Tier1Multiplier
	}
	if o.HeavyPenalty != nil && len(p.Penalties) > 0 {
		p.Penalties[0].Factor = *o.HeavyPenalty
	}
	if o.LightPenalty != nil && len(p.Penalties) > 1 {
		p.Penalties[1].Factor = *o.LightPenalty
	}
}

// IsZero reports whether no override is set.
func (o PolicyOverrides) IsZero() bool {
	return o.Tier1Multiplier == nil && o.HeavyPenalty == nil && o.LightPenalty == nil
}

// ResolveFormat returns the output format, preferring a non-empty flag value.
func ResolveFormat(cfg Config, format string) (reimburse.Format, error) {
	if format != "" {
		return reimburse.ParseFormat(format)
	}
	return reimburse.ParseFormat(cfg.Output.Format)
}
