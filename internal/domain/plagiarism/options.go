package plagiarism

import "github.com/okian/matchday/pkg/logger"

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithMetadataSource sets the repository-metadata lookup.
func WithMetadataSource(src MetadataSource) Option {
	return func(d *Detector) {
		d.metadata = src
	}
}

// WithSearchSource sets the public-repository search lookup.
func WithSearchSource(src SearchSource) Option {
	return func(d *Detector) {
		d.search = src
	}
}

// WithDescriptionStore sets the prior-project description store.
func WithDescriptionStore(store DescriptionStore) Option {
	return func(d *Detector) {
		d.store = store
	}
}

// WithLogger sets a custom logger for the detector.
func WithLogger(l logger.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}
