package hydrate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type author struct {
	Name     string `json:"name"`
	PathWord string `json:"path_word,omitempty"`
}

type volume struct {
	Title    string            `json:"title"`
	Authors  []author          `json:"authors"`
	Lead     *author           `json:"lead"`
	Index    map[string]author `json:"index"`
	Numbers  []int             `json:"numbers"`
	Released time.Time         `json:"released"`
	Plain    string
	Skipped  string `json:"-"`
	internal string
}

func TestDescribe(t *testing.T) {
	s := Describe[volume]()

	assert.Equal(t, "volume", s.Name)
	assert.Equal(t, []Field{
		Prim("title"),
		Seq("authors", "author"),
		Rec("lead", "author"),
		Map("index", "author"),
		Prim("numbers"),
		Prim("released"),
		Prim("Plain"),
	}, s.Fields)

	f, ok := s.Field("authors")
	require.True(t, ok)
	assert.Equal(t, "[]author", f.String())

	_, ok = s.Field("Skipped")
	assert.False(t, ok)
}

func TestDescribe_PointerType(t *testing.T) {
	s := Describe[*author]()
	assert.Equal(t, "author", s.Name)
	assert.Equal(t, []Field{Prim("name"), Prim("path_word")}, s.Fields)
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name   string
		shapes []*Shape
		errIs  error
	}{
		{
			name:   "dangling reference",
			shapes: []*Shape{NewShape("A", Rec("b", "B"))},
			errIs:  ErrUnknownShape,
		},
		{
			name:   "duplicate",
			shapes: []*Shape{NewShape("A"), NewShape("A")},
		},
		{
			name:   "unnamed",
			shapes: []*Shape{NewShape("")},
		},
		{
			name:   "nil",
			shapes: []*Shape{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.shapes...)
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestRegistry_LookupAndOrder(t *testing.T) {
	reg := MustRegistry(Describe[volume](), Describe[author]())

	names := []string{}
	for _, s := range reg.Shapes() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"volume", "author"}, names)

	s, ok := reg.Lookup("author")
	require.True(t, ok)
	assert.Len(t, s.Fields, 2)

	_, ok = reg.Lookup("nope")
	assert.False(t, ok)
}

func TestMustRegistry_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegistry(NewShape("A", Seq("items", "Item")))
	})
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "primitive", FieldPrimitive.String())
	assert.Equal(t, "record", FieldRecord.String())
	assert.Equal(t, "sequence", FieldSequence.String())
	assert.Equal(t, "mapping", FieldMapping.String())
	assert.Equal(t, "map[string]Tag", Map("m", "Tag").String())
	assert.Equal(t, "primitive", Prim("p").String())
}
