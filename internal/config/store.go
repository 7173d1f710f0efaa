package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ramos/internal/domain"
	"ramos/internal/logging"
	"ramos/internal/ports"
)

// storagePrefix namespaces persisted option values inside the shared
// key/value store, away from cache entries.
const storagePrefix = "config_"

// Store holds the live internal value of every registered option, backed by
// the persistent key/value store. Persisted values are always the user-facing
// (pre-transform) form; internal values are recomputed on load.
//
// Store is not safe for concurrent use from multiple goroutines without
// external serialization; commands mutate it only from the main goroutine.
type Store struct {
	kv      ports.KeyValueStore
	numbers map[Key]float64
	strings map[Key]string
}

// NewStore creates a Store and populates it from persisted values, falling
// back to each option's default.
func NewStore(kv ports.KeyValueStore) (*Store, error) {
	s := &Store{
		kv:      kv,
		numbers: make(map[Key]float64, len(Options)),
		strings: make(map[Key]string, len(Options)),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	for _, opt := range Options {
		raw, ok, err := s.kv.Get(storagePrefix + string(opt.Key))
		if err != nil {
			return fmt.Errorf("failed to load option %s: %w", opt.Key, err)
		}

		if !opt.IsNumeric() {
			if !ok {
				raw = opt.Default
			}
			s.strings[opt.Key] = raw
			continue
		}

		userValue := opt.Numeric.Default
		if ok {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				// A corrupt persisted value falls back to the default rather
				// than failing startup
				logging.Logger.Warn("Ignoring unparseable persisted option",
					"key", opt.Key, "value", raw, "error", err)
			} else {
				userValue = parsed
			}
		}
		s.numbers[opt.Key] = s.toInternal(opt, userValue)
	}
	return nil
}

func (s *Store) toInternal(opt Option, userValue float64) float64 {
	if opt.Numeric.ToInternal != nil {
		return opt.Numeric.ToInternal(userValue)
	}
	return userValue
}

// Number returns the internal numeric value for key. Every numeric key has a
// guaranteed default, so reads never fail.
func (s *Store) Number(key Key) float64 {
	return s.numbers[key]
}

// Int returns the internal numeric value for key truncated to an int.
func (s *Store) Int(key Key) int {
	return int(s.numbers[key])
}

// Duration interprets the internal numeric value for key as milliseconds.
func (s *Store) Duration(key Key) time.Duration {
	return time.Duration(s.numbers[key]) * time.Millisecond
}

// String returns the value for a string option.
func (s *Store) String(key Key) string {
	return s.strings[key]
}

// Snapshot returns a copy of all current internal values, immune to external
// mutation.
func (s *Store) Snapshot() map[Key]any {
	values := make(map[Key]any, len(s.numbers)+len(s.strings))
	for k, v := range s.numbers {
		values[k] = v
	}
	for k, v := range s.strings {
		values[k] = v
	}
	return values
}

// Update validates and applies a raw user-supplied value for key, persisting
// the user-facing form and storing the transformed internal form. On any
// error the previous state is left untouched.
func (s *Store) Update(key Key, raw string) error {
	opt, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownOption, key)
	}

	if !opt.IsNumeric() {
		if err := s.kv.Set(storagePrefix+string(key), raw); err != nil {
			return fmt.Errorf("failed to persist %s: %w", key, err)
		}
		s.strings[key] = raw
		logging.Logger.Info("Configuration updated", "key", key)
		return nil
	}

	parsed, err := ParseNumeric(opt, raw)
	if err != nil {
		return err
	}

	// Persist the user-facing value; keep the transformed value live
	if err := s.kv.Set(storagePrefix+string(key), strconv.FormatFloat(parsed, 'f', -1, 64)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	s.numbers[key] = s.toInternal(opt, parsed)
	logging.Logger.Info("Configuration updated", "key", key, "value", parsed)
	return nil
}

// ParseNumeric parses and range-checks a raw user value for a numeric
// option, returning the user-facing number.
func ParseNumeric(opt Option, raw string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrNotANumber, raw)
	}
	if opt.Numeric.Validate != nil && !opt.Numeric.Validate(parsed) {
		return 0, fmt.Errorf("%w: %v is not valid for %s", domain.ErrOutOfRange, parsed, opt.Label)
	}
	return parsed, nil
}

// Reset restores every option to its default, recomputing internal values
// exactly as the initial load does.
func (s *Store) Reset() error {
	for _, opt := range Options {
		if opt.IsNumeric() {
			userValue := opt.Numeric.Default
			if err := s.kv.Set(storagePrefix+string(opt.Key), strconv.FormatFloat(userValue, 'f', -1, 64)); err != nil {
				return fmt.Errorf("failed to persist %s: %w", opt.Key, err)
			}
			s.numbers[opt.Key] = s.toInternal(opt, userValue)
			continue
		}
		if err := s.kv.Set(storagePrefix+string(opt.Key), opt.Default); err != nil {
			return fmt.Errorf("failed to persist %s: %w", opt.Key, err)
		}
		s.strings[opt.Key] = opt.Default
	}
	logging.Logger.Info("Configuration reset to defaults")
	return nil
}

// DisplayValue returns the user-facing value of an option for presentation,
// applying FromInternal and the display unit when present.
func (s *Store) DisplayValue(opt Option) string {
	if !opt.IsNumeric() {
		return s.strings[opt.Key]
	}
	value := s.numbers[opt.Key]
	if opt.Numeric.FromInternal != nil {
		value = opt.Numeric.FromInternal(value)
	}
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if opt.Numeric.Unit != "" {
		text += " " + opt.Numeric.Unit
	}
	return text
}
