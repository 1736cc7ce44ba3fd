package filter

import (
	"sync/atomic"
	"time"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRegexTimeout bounds a single match so that a hostile pattern
// cannot stall evaluation.
const DefaultRegexTimeout = 500 * time.Millisecond

// regexCacheSize bounds the compiled patterns kept around. Patterns come
// from callers, so the cache must not grow with them.
const regexCacheSize = 1024

var (
	// regexCache maps a pattern to its compiled form, or to nil when the
	// pattern does not compile.
	regexCache   = mustCache(regexCacheSize)
	regexTimeout atomic.Int64
)

func init() {
	regexTimeout.Store(int64(DefaultRegexTimeout))
}

func mustCache(size int) *lru.Cache[string, *regexp2.Regexp] {
	c, err := lru.New[string, *regexp2.Regexp](size)
	if err != nil {
		panic(err)
	}
	return c
}

// SetRegexTimeout changes the match timeout used by patterns compiled from
// now on and drops already compiled patterns.
func SetRegexTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultRegexTimeout
	}
	regexTimeout.Store(int64(timeout))
	regexCache.Purge()
}

// Regex is satisfied by strings matching Pattern. A pattern that does not
// compile, or a match that exceeds the timeout, makes the filter match
// nothing.
type Regex struct {
	Pattern string
}

// Matches creates a new Regex filter
func Matches(pattern string) *Regex {
	return &Regex{Pattern: pattern}
}

func (f Regex) SatisfiedBy(input string) bool {
	re := compile(f.Pattern)
	if re == nil {
		return false
	}
	ok, err := re.MatchString(input)
	if err != nil {
		return false
	}
	return ok
}

// Valid reports whether the pattern compiles. Storage translators use it to
// render an always-false condition instead of sending a broken pattern.
func (f Regex) Valid() bool {
	return compile(f.Pattern) != nil
}

// compile may run twice for the same pattern under contention; both
// results are equivalent.
func compile(pattern string) *regexp2.Regexp {
	if re, ok := regexCache.Get(pattern); ok {
		return re
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		re = nil
	} else {
		re.MatchTimeout = time.Duration(regexTimeout.Load())
	}
	regexCache.Add(pattern, re)
	return re
}
