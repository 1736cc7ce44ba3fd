package filter

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBetweenBoundaries(t *testing.T) {
	between := NewBetween(1, 4)
	for _, x := range []int{2, 3} {
		assert.True(t, between.SatisfiedBy(x), "between should accept %d", x)
	}
	for _, x := range []int{0, 1, 4, 5} {
		assert.False(t, between.SatisfiedBy(x), "between should reject %d", x)
	}

	betweenEqual := NewBetweenEqual(1, 4)
	for _, x := range []int{1, 2, 3, 4} {
		assert.True(t, betweenEqual.SatisfiedBy(x), "between equal should accept %d", x)
	}
	for _, x := range []int{0, 5} {
		assert.False(t, betweenEqual.SatisfiedBy(x), "between equal should reject %d", x)
	}
}

func TestNotBetweenIsComplement(t *testing.T) {
	between := NewBetween(1, 4)
	notBetween := NewNotBetween(1, 4)
	betweenEqual := NewBetweenEqual(1, 4)
	notBetweenEqual := NewNotBetweenEqual(1, 4)

	for x := -2; x <= 7; x++ {
		assert.Equal(t, !between.SatisfiedBy(x), notBetween.SatisfiedBy(x), "x=%d", x)
		assert.Equal(t, !betweenEqual.SatisfiedBy(x), notBetweenEqual.SatisfiedBy(x), "x=%d", x)
	}
	assert.True(t, notBetween.SatisfiedBy(1))
	assert.True(t, notBetween.SatisfiedBy(4))
	assert.False(t, notBetweenEqual.SatisfiedBy(1))
	assert.False(t, notBetweenEqual.SatisfiedBy(4))
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter[int]
		input  int
		want   bool
	}{
		{"eq match", Eq(3), 3, true},
		{"eq mismatch", Eq(3), 4, false},
		{"ne match", Ne(3), 4, true},
		{"ne mismatch", Ne(3), 3, false},
		{"lt below", Lt(3), 2, true},
		{"lt at", Lt(3), 3, false},
		{"le at", Le(3), 3, true},
		{"le above", Le(3), 4, false},
		{"gt above", Gt(3), 4, true},
		{"gt at", Gt(3), 3, false},
		{"ge at", Ge(3), 3, true},
		{"ge below", Ge(3), 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.SatisfiedBy(tt.input))
		})
	}
}

func TestStringOrdering(t *testing.T) {
	assert.True(t, Lt("bob").SatisfiedBy("alice"))
	assert.False(t, Gt("bob").SatisfiedBy("alice"))
	assert.True(t, NewBetweenEqual("a", "c").SatisfiedBy("b"))
}

func TestOptionalIsIdentity(t *testing.T) {
	var absent *Equal[int]
	for _, x := range []int{-1, 0, 1, 42} {
		assert.True(t, Optional(absent, x))
	}

	present := Eq(1)
	for _, x := range []int{-1, 0, 1, 42} {
		assert.Equal(t, present.SatisfiedBy(x), Optional(present, x))
	}
}

func TestNegationLaw(t *testing.T) {
	filters := []Filter[int]{
		Eq(2), Ne(2), Lt(2), Ge(2),
		NewBetween(0, 3), NewBetweenEqual(0, 3),
		OneOf(1, 3, 5), NoneOf(1, 3, 5),
	}
	for _, f := range filters {
		not := Negate(f)
		for x := -1; x <= 6; x++ {
			assert.Equal(t, !f.SatisfiedBy(x), not.SatisfiedBy(x), "%T x=%d", f, x)
		}
	}
}

func TestAll(t *testing.T) {
	assert.True(t, And[int]().SatisfiedBy(10), "empty conjunction is true")

	all := And[int](Ge(1), Le(5), Ne(3))
	assert.True(t, all.SatisfiedBy(2))
	assert.False(t, all.SatisfiedBy(3))
	assert.False(t, all.SatisfiedBy(6))

	assert.True(t, And[int](nil, Eq(1)).SatisfiedBy(1), "nil members are skipped")
}

func TestFunc(t *testing.T) {
	even := Func[int](func(x int) bool { return x%2 == 0 })
	assert.True(t, even.SatisfiedBy(4))
	assert.False(t, Negate[int](even).SatisfiedBy(4))
}

func TestRegex(t *testing.T) {
	re := Matches(`^ali`)
	assert.True(t, re.Valid())
	assert.True(t, re.SatisfiedBy("alice"))
	assert.False(t, re.SatisfiedBy("bob"))
}

func TestRegexInvalidPatternMatchesNothing(t *testing.T) {
	re := Matches(`(unclosed`)
	assert.False(t, re.Valid())
	for _, input := range []string{"", "(unclosed", "anything"} {
		assert.False(t, re.SatisfiedBy(input))
	}
	// cached negative result must stay stable
	assert.False(t, re.SatisfiedBy("(unclosed"))
}

func TestRegexTimeoutMatchesNothing(t *testing.T) {
	SetRegexTimeout(time.Millisecond)
	defer SetRegexTimeout(DefaultRegexTimeout)

	re := Matches(`^(a+)+$`)
	input := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa!"
	assert.False(t, re.SatisfiedBy(input))
}

func TestRegexCacheIsBounded(t *testing.T) {
	SetRegexTimeout(DefaultRegexTimeout)
	for i := range regexCacheSize + 10 {
		Matches(fmt.Sprintf("^user%d$", i)).Valid()
	}
	assert.Equal(t, regexCacheSize, regexCache.Len())

	// evicted patterns compile again on demand
	assert.True(t, Matches("^user0$").SatisfiedBy("user0"))
}
