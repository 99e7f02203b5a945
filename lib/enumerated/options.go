package enumerated

import (
	"errors"

	"go.uber.org/zap"

	"github.com/thebagchi/asn1enum-go/internal/options"
)

type config struct {
	logger   *zap.Logger
	capacity int
	xmlTag   string
}

// Option configures a Type.
type Option = options.Option[*config]

// WithLogger replaces the package logger.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(c *config) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		c.logger = logger
		return nil
	})
}

// WithCapacity bounds every encoding to n bytes. An encoding that does not
// fit fails with asnerr.ErrCapacityExceeded. Zero means unbounded.
func WithCapacity(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return errors.New("negative capacity")
		}
		c.capacity = n
		return nil
	})
}

// WithXMLTag sets the XER wrapper element, which defaults to the type name.
// An empty tag encodes the bare enumerator element.
func WithXMLTag(tag string) Option {
	return options.NoError(func(c *config) {
		c.xmlTag = tag
	})
}
