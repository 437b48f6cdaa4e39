package data

import "github.com/kerbaras/comicdto/pkg/hydrate"

// Shape names, equal to the Go type names.
const (
	ShapeBookInfo         = "BookInfo"
	ShapeChapterInfo      = "ChapterInfo"
	ShapeDisplay          = "Display"
	ShapePathWord         = "PathWord"
	ShapeComic            = "Comic"
	ShapeUser             = "User"
	ShapeConfig           = "Config"
	ShapeDownloaderSingle = "DownloaderSingle"
)

// Registry holds every record shape exchanged with the frontend.
var Registry = hydrate.MustRegistry(
	hydrate.Describe[BookInfo](),
	hydrate.Describe[ChapterInfo](),
	hydrate.Describe[Display](),
	hydrate.Describe[PathWord](),
	hydrate.Describe[Comic](),
	hydrate.Describe[User](),
	hydrate.Describe[Config](),
	hydrate.Describe[DownloaderSingle](),
)

var secretFields = map[string]map[string]bool{
	ShapeUser: {"password": true, "token": true},
}

// Secret reports whether field of shape holds a credential that must be
// masked before display.
func Secret(shape, field string) bool {
	return secretFields[shape][field]
}

// Hydrate runs the shared registry over in.
func Hydrate(in hydrate.Value, shape string, opts ...hydrate.Option) (hydrate.Value, error) {
	return Registry.Hydrate(in, shape, opts...)
}

// Parse hydrates a JSON document into T.
func Parse[T any](payload []byte) (T, error) {
	return hydrate.Decode[T](Registry, hydrate.Primitive(string(payload)))
}

// ParseList hydrates a JSON array into a slice of T.
func ParseList[T any](payload []byte) ([]T, error) {
	return hydrate.DecodeSlice[T](Registry, hydrate.Primitive(string(payload)))
}

// ParseMap hydrates a JSON object used as a lookup table of T.
func ParseMap[T any](payload []byte) (map[string]T, error) {
	return hydrate.DecodeMap[T](Registry, hydrate.Primitive(string(payload)))
}
