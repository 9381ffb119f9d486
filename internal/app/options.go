package service

import (
	"github.com/carver/wishforge/internal/domain/match"
	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the curated entry provider.
func WithSource(src Source) Option {
	return func(s *Service) { s.source = src }
}

// WithCatalog sets the item catalog accessor.
func WithCatalog(c Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithSink sets where the rendered wishlist goes.
func WithSink(sink Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithPolicy sets the tier expansion policy.
func WithPolicy(policy model.TierPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithWorkerCount bounds concurrent weapon matching.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithOutputPath records the output file name written into the header.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputName = outputName(path)
		}
	}
}

// WithMatchOptions forwards options to the matcher, e.g. threshold overrides.
func WithMatchOptions(opts ...match.Option) Option {
	return func(s *Service) { s.matchOpts = append(s.matchOpts, opts...) }
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
