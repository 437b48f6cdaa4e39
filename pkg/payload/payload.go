// Package payload reads the record-bearing parts of backend response bodies.
package payload

import (
	"strings"

	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"github.com/tidwall/gjson"
)

// Envelope paths used by the comic backend.
const (
	ListPath    = "results.list"
	ComicPath   = "results.comic"
	TokenPath   = "results.token"
	MessagePath = "message"
)

const rateLimitMessage = "Expected available in"

// Extract returns the value at path inside body, or the whole body when path
// is empty. A malformed body is a *hydrate.ParseError; a missing path is an
// absent value.
func Extract(body []byte, path string) (hydrate.Value, error) {
	whole, err := hydrate.FromJSON(body)
	if err != nil || path == "" {
		return whole, err
	}
	res := gjson.GetBytes(body, path)
	if !res.Exists() {
		return hydrate.Absent(), nil
	}
	return hydrate.FromJSON([]byte(res.Raw))
}

// SearchResults reads the comics of a search response.
func SearchResults(body []byte) ([]data.Comic, error) {
	return list[data.Comic](body, ListPath)
}

// Chapters reads the chapter list of a comic's chapter response.
func Chapters(body []byte) ([]data.ChapterInfo, error) {
	return list[data.ChapterInfo](body, ListPath)
}

// ComicDetail reads the comic of a detail response.
func ComicDetail(body []byte) (data.Comic, error) {
	v, err := Extract(body, ComicPath)
	if err != nil {
		return data.Comic{}, err
	}
	return hydrate.Decode[data.Comic](data.Registry, v)
}

// BookInfo reads the series metadata of a detail response. Authors and
// themes are joined by name; Title is per chapter and stays empty.
func BookInfo(body []byte) (data.BookInfo, error) {
	comic, err := ComicDetail(body)
	if err != nil {
		return data.BookInfo{}, err
	}
	return data.BookInfo{
		Series:      comic.Name,
		Author:      joinNames(comic.Author),
		Description: comic.Brief,
		Genre:       joinNames(comic.Theme),
		Cover:       comic.Cover,
	}, nil
}

// Progress reads a progress event: a bare array of download snapshots.
func Progress(body []byte) ([]data.DownloaderSingle, error) {
	return list[data.DownloaderSingle](body, "")
}

// Token returns the session token of a login response, or "".
func Token(body []byte) string {
	return gjson.GetBytes(body, TokenPath).String()
}

// RateLimited reports whether the backend refused the request for rate.
func RateLimited(body []byte) bool {
	return strings.Contains(gjson.GetBytes(body, MessagePath).String(), rateLimitMessage)
}

func list[T any](body []byte, path string) ([]T, error) {
	v, err := Extract(body, path)
	if err != nil {
		return nil, err
	}
	return hydrate.DecodeSlice[T](data.Registry, v)
}

func joinNames(words []data.PathWord) string {
	names := make([]string, len(words))
	for i, w := range words {
		names[i] = w.Name
	}
	return strings.Join(names, ", ")
}
