package navconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/waypoint/pkg/deeplink"
	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

// RouteSpec declares one deep-link pattern and the route it produces.
type RouteSpec struct {
	// Pattern is the /-delimited template with :name captures.
	Pattern string `yaml:"pattern"`
	// Path is the produced route's identity path.
	Path string `yaml:"path"`
	// Title is the optional human-readable title.
	Title string `yaml:"title"`
	// Modal marks the route as modal: "sheet" or "full_screen".
	Modal string `yaml:"modal"`
}

// Config is the declarative navigation surface of an app.
type Config struct {
	Schemes  []string    `yaml:"schemes"`
	Host     string      `yaml:"host"`
	MaxDepth int         `yaml:"max_depth"`
	Tabs     []string    `yaml:"tabs"`
	Routes   []RouteSpec `yaml:"routes"`
}

// Load decodes a YAML config. Unknown fields are rejected so typos in a
// config file fail loudly instead of being silently ignored.
func Load(r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and decodes a YAML config file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("navconfig: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks semantic constraints beyond YAML well-formedness.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative", ErrValidation)
	}

	seenTabs := make(map[string]struct{}, len(c.Tabs))
	for _, tab := range c.Tabs {
		if tab == "" {
			return fmt.Errorf("%w: empty tab id", ErrValidation)
		}
		if _, dup := seenTabs[tab]; dup {
			return fmt.Errorf("%w: duplicate tab %q", ErrValidation, tab)
		}
		seenTabs[tab] = struct{}{}
	}

	seenPatterns := make(map[string]struct{}, len(c.Routes))
	for i, spec := range c.Routes {
		if spec.Pattern == "" {
			return fmt.Errorf("%w: route %d has no pattern", ErrValidation, i)
		}
		if spec.Path == "" {
			return fmt.Errorf("%w: route %q has no path", ErrValidation, spec.Pattern)
		}
		if _, dup := seenPatterns[spec.Pattern]; dup {
			return fmt.Errorf("%w: duplicate pattern %q", ErrValidation, spec.Pattern)
		}
		seenPatterns[spec.Pattern] = struct{}{}

		switch spec.Modal {
		case "", "sheet", "full_screen":
		default:
			return fmt.Errorf("%w: route %q has unknown modal style %q", ErrValidation, spec.Pattern, spec.Modal)
		}
	}

	return nil
}

// NewParser builds a deep-link parser from the config: scheme and host
// restrictions applied, every route registered in declaration order.
func (c Config) NewParser(opts ...deeplink.Option) (*deeplink.Parser, error) {
	all := make([]deeplink.Option, 0, len(opts)+2)
	if len(c.Schemes) > 0 {
		all = append(all, deeplink.WithSchemes(c.Schemes...))
	}
	if c.Host != "" {
		all = append(all, deeplink.WithHost(c.Host))
	}
	all = append(all, opts...)

	parser := deeplink.New(all...)
	for _, spec := range c.Routes {
		if err := parser.Register(spec.Pattern, specFactory(spec)); err != nil {
			return nil, fmt.Errorf("navconfig: register %q: %w", spec.Pattern, err)
		}
	}
	return parser, nil
}

// StackOptions translates the config's stack limits into stack options.
func (c Config) StackOptions() []stack.Option {
	var opts []stack.Option
	if c.MaxDepth > 0 {
		opts = append(opts, stack.WithMaxDepth(c.MaxDepth))
	}
	return opts
}

// RoutePaths lists the distinct route paths the config can produce,
// in declaration order. Useful as input to a compatibility hash.
func (c Config) RoutePaths() []string {
	seen := make(map[string]struct{}, len(c.Routes))
	paths := make([]string, 0, len(c.Routes))
	for _, spec := range c.Routes {
		if _, ok := seen[spec.Path]; ok {
			continue
		}
		seen[spec.Path] = struct{}{}
		paths = append(paths, spec.Path)
	}
	return paths
}

func specFactory(spec RouteSpec) deeplink.Factory {
	return func(params map[string]string) (route.Route, bool) {
		opts := []route.Option{route.WithParams(params)}
		if spec.Title != "" {
			opts = append(opts, route.WithTitle(spec.Title))
		}
		if spec.Modal != "" {
			opts = append(opts, route.AsModal(route.StyleFromString(spec.Modal)))
		}
		return route.New(spec.Path, opts...), true
	}
}
