package config

// Key identifies a configuration option.
type Key string

// Registered option keys.
const (
	MaxBranches   Key = "MAX_BRANCHES"
	CacheDuration Key = "CACHE_DURATION"
	GitHubToken   Key = "GITHUB_TOKEN"
)

// NumericSpec carries the numeric-only capabilities of an option. The
// transform pair exists so the user-facing unit (e.g. minutes) can differ from
// the internal unit (e.g. milliseconds) without leaking the conversion into
// call sites: consumers always read the internal value.
type NumericSpec struct {
	Default      float64
	Unit         string
	Validate     func(float64) bool
	ToInternal   func(float64) float64
	FromInternal func(float64) float64
}

// Option is one entry of the declarative registry. Numeric is nil for string
// options; that nil check is the single dispatch point between the two
// variants.
type Option struct {
	Key         Key
	Label       string
	Description string
	Numeric     *NumericSpec
	Default     string // string-option default, unused for numeric options
}

// IsNumeric reports whether the option holds a numeric value.
func (o Option) IsNumeric() bool { return o.Numeric != nil }

// Options is the full registry. Every key maps to exactly one definition.
var Options = []Option{
	{
		Key:         MaxBranches,
		Label:       "Max Branches",
		Description: "Maximum number of branches to display",
		Numeric: &NumericSpec{
			Default:  7,
			Validate: func(v float64) bool { return v > 0 && v <= 50 },
		},
	},
	{
		Key:         CacheDuration,
		Label:       "Cache Duration (minutes)",
		Description: "Cache duration in minutes",
		Numeric: &NumericSpec{
			Default:      5, // user-facing value in minutes
			Unit:         "minutes",
			Validate:     func(v float64) bool { return v >= 1 && v <= 60 },
			ToInternal:   func(minutes float64) float64 { return minutes * 60 * 1000 }, // to milliseconds
			FromInternal: func(ms float64) float64 { return ms / (60 * 1000) },         // to minutes
		},
	},
	{
		Key:         GitHubToken,
		Label:       "GitHub Token",
		Description: "Personal access token forwarded as a bearer token (optional)",
		Default:     "",
	},
}

// Lookup returns the registered option for key.
func Lookup(key Key) (Option, bool) {
	for _, opt := range Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}
