package match

import "github.com/carver/wishforge/pkg/logger"

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithWeaponThreshold overrides the similarity cutoff for weapon candidates.
func WithWeaponThreshold(t float64) Option {
	return func(m *Matcher) {
		if t > 0 && t < 1 {
			m.weaponThreshold = t
		}
	}
}

// WithPerkThreshold overrides the similarity cutoff for perk candidates.
func WithPerkThreshold(t float64) Option {
	return func(m *Matcher) {
		if t > 0 && t < 1 {
			m.perkThreshold = t
		}
	}
}

// WithLogger sets the logger used for match tracing.
func WithLogger(l logger.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}
