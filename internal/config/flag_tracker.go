package config

import (
	"sort"

	"github.com/spf13/pflag"
)

// FlagTracker is the set of command-line flags the user passed. A config
// value is overridden only by a flag in the set, so a flag's default never
// masks what .antiplag.toml says. A nil tracker holds no flags.
type FlagTracker struct {
	set map[string]struct{}
}

func NewFlagTracker() *FlagTracker {
	return &FlagTracker{set: map[string]struct{}{}}
}

// NewFlagTrackerFromFlagSet collects the flags changed on fs
func NewFlagTrackerFromFlagSet(fs *pflag.FlagSet) *FlagTracker {
	ft := NewFlagTracker()
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) { ft.Set(f.Name) })
	}
	return ft
}

// Set records name as passed. The compare command uses it for values
// that arrive as positional arguments.
func (ft *FlagTracker) Set(name string) {
	ft.set[name] = struct{}{}
}

func (ft *FlagTracker) WasSet(name string) bool {
	if ft == nil {
		return false
	}
	_, ok := ft.set[name]
	return ok
}

// Names lists the tracked flags in sorted order, for debug logging
func (ft *FlagTracker) Names() []string {
	if ft == nil {
		return nil
	}
	names := make([]string, 0, len(ft.set))
	for name := range ft.set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pick[T any](ft *FlagTracker, fromConfig, fromFlag T, name string) T {
	if ft.WasSet(name) {
		return fromFlag
	}
	return fromConfig
}

func (ft *FlagTracker) MergeString(fromConfig, fromFlag, name string) string {
	return pick(ft, fromConfig, fromFlag, name)
}

func (ft *FlagTracker) MergeInt(fromConfig, fromFlag int, name string) int {
	return pick(ft, fromConfig, fromFlag, name)
}

func (ft *FlagTracker) MergeBool(fromConfig, fromFlag bool, name string) bool {
	return pick(ft, fromConfig, fromFlag, name)
}

func (ft *FlagTracker) MergeFloat64(fromConfig, fromFlag float64, name string) float64 {
	return pick(ft, fromConfig, fromFlag, name)
}

// MergeStringSlice keeps the configured patterns when the flag was passed
// without values (e.g. --exclude "")
func (ft *FlagTracker) MergeStringSlice(fromConfig, fromFlag []string, name string) []string {
	if len(fromFlag) == 0 {
		return fromConfig
	}
	return pick(ft, fromConfig, fromFlag, name)
}
