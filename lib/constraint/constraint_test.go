package constraint

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
)

func makeAR(t *testing.T) (*assert.Assertions, *require.Assertions) {
	return assert.New(t), require.New(t)
}

func rootOf(n int) []Enumerator {
	root := make([]Enumerator, n)
	for i := range root {
		root[i] = Enumerator{Name: fmt.Sprintf("v%d", i), Value: int64(i)}
	}
	return root
}

func TestBitWidth(t *testing.T) {
	test := func(count int, expected int) {
		t.Run(fmt.Sprintf("ROOT_COUNT_%d", count), func(t *testing.T) {
			s := MustNew("T", rootOf(count), false)
			assert.Equal(t, expected, s.BitWidth())
		})
	}
	test(1, 0)
	test(2, 1)
	test(3, 2)
	test(4, 2)
	test(5, 3)
	test(8, 3)
	test(9, 4)
	test(255, 8)
	test(256, 8)
	test(257, 9)
}

func TestClassify(t *testing.T) {
	assert, _ := makeAR(t)

	s := MustNew("Links-to-log", []Enumerator{
		{"uplink", 0}, {"downlink", 1}, {"both-uplink-and-downlink", 2},
	}, true, Enumerator{"later", 3})

	v := s.Classify(2)
	assert.True(v.IsRoot())
	assert.Equal(2, v.Index())
	assert.EqualValues(2, v.Ordinal)

	v = s.Classify(3)
	assert.True(v.IsExtension())
	assert.Equal(-1, v.Index())

	v = s.Classify(99)
	assert.True(v.IsExtension())
	assert.EqualValues(99, v.Ordinal)
	assert.Equal("Extension(99)", v.String())
}

func TestZeroValue(t *testing.T) {
	assert, _ := makeAR(t)

	var v Value
	assert.False(v.IsValid())
	assert.False(v.IsRoot())
	assert.False(v.IsExtension())
	assert.Equal(-1, v.Index())
	assert.Equal("Invalid", v.String())

	assert.True(Root(0, 0).IsValid())
	assert.NotEqual(v, Root(0, 0))
	assert.Equal("Root(0)=0", Root(0, 0).String())
	assert.True(Extension(0).IsValid())
}

func TestClassifyDeclarationOrder(t *testing.T) {
	assert, _ := makeAR(t)

	s := MustNew("Sparse", []Enumerator{{"ten", 10}, {"minus", -5}, {"zero", 0}}, false)
	assert.Equal(0, s.Classify(10).Index())
	assert.Equal(1, s.Classify(-5).Index())
	assert.Equal(2, s.Classify(0).Index())
	assert.Equal("minus", s.Root(1).Name)
}

func TestLookup(t *testing.T) {
	assert, _ := makeAR(t)

	s := MustNew("Registration-Request", []Enumerator{{"start", 0}, {"stop", 1}}, true,
		Enumerator{"partial-stop", 2}, Enumerator{"add", 3})

	e, ok := s.Lookup(3)
	assert.True(ok)
	assert.Equal("add", e.Name)

	e, ok = s.LookupName("partial-stop")
	assert.True(ok)
	assert.EqualValues(2, e.Value)

	_, ok = s.Lookup(4)
	assert.False(ok)
	_, ok = s.LookupName("Start")
	assert.False(ok)

	assert.Len(s.Roots(), 2)
	assert.Len(s.Additions(), 2)
}

func TestCheck(t *testing.T) {
	assert, _ := makeAR(t)

	closed := MustNew("Criticality", []Enumerator{{"reject", 0}, {"ignore", 1}, {"notify", 2}}, false)
	assert.NoError(closed.Check(1))
	err := closed.Check(3)
	assert.True(errors.Is(err, asnerr.ErrUnknownEnumerator))

	open := MustNew("TypeOfError", []Enumerator{{"not-understood", 0}, {"missing", 1}}, true)
	assert.NoError(open.Check(1000))
}

func TestNewErrors(t *testing.T) {
	assert, require := makeAR(t)

	_, err := New("Empty", nil, false)
	require.Error(err)
	assert.Contains(err.Error(), "empty root")

	_, err = New("Broken", []Enumerator{{"a", 0}, {"a", 1}, {"b", 0}, {"", 5}}, false, Enumerator{"c", 2})
	require.Error(err)
	assert.Len(multierr.Errors(errors.Unwrap(err)), 4)

	assert.Panics(func() { MustNew("Empty", nil, true) })
}

func TestSpecImmutable(t *testing.T) {
	root := []Enumerator{{"a", 0}, {"b", 1}}
	s := MustNew("T", root, false)
	root[0].Name = "changed"
	s.Roots()[1].Name = "changed"
	assert.Equal(t, "a", s.Root(0).Name)
	assert.Equal(t, "b", s.Root(1).Name)
}
