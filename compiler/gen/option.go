package gen

// Option configures code generation.
type Option func(*Config) error

// WithModule sets the module path of the generated service.
func WithModule(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Module", nil, "module cannot be empty")
		}
		c.Module = path
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated Go file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithBcryptCost sets the password hashing cost of the auth routes.
func WithBcryptCost(cost int) Option {
	return func(c *Config) error {
		c.BcryptCost = cost
		return nil
	}
}

// WithGoVersion sets the go directive of the generated go.mod.
func WithGoVersion(v string) Option {
	return func(c *Config) error {
		if v == "" {
			return NewConfigError("GoVersion", nil, "go version cannot be empty")
		}
		c.GoVersion = v
		return nil
	}
}

// WithWorkers sets the number of parallel workers. Non-positive values
// keep the current setting.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n > 0 {
			c.Workers = n
		}
		return nil
	}
}

// WithoutViews skips creation of the views directory.
func WithoutViews() Option {
	return func(c *Config) error {
		c.NoViews = true
		return nil
	}
}

// WithConfig replaces the whole config, e.g. with one from LoadConfig.
func WithConfig(cfg *Config) Option {
	return func(c *Config) error {
		if cfg == nil {
			return NewConfigError("Config", nil, "config cannot be nil")
		}
		*c = *cfg
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a new Config from the defaults and the given options,
// and validates the result.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaults()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
