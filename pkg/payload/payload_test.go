package payload

import (
	"strings"
	"testing"

	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"code": 200,
	"message": "请求成功",
	"results": {
		"list": [
			{"name":"One","path_word":"one","author":[{"name":"Oda","path_word":"oda"}],"region":{"value":0,"display":"日本"},"popular":9001},
			{"name":"Two","path_word":"two","theme":[{"name":"Action","path_word":"action"}]}
		],
		"total": 2,
		"limit": 12,
		"offset": 0
	}
}`

func TestSearchResults(t *testing.T) {
	comics, err := SearchResults([]byte(searchBody))
	require.NoError(t, err)
	require.Len(t, comics, 2)

	assert.Equal(t, "One", comics[0].Name)
	assert.Equal(t, []data.PathWord{{Name: "Oda", PathWord: "oda"}}, comics[0].Author)
	assert.Equal(t, data.Display{Value: 0, Display: "日本"}, comics[0].Region)

	assert.Equal(t, "two", comics[1].PathWord)
	assert.Nil(t, comics[1].Author)
	assert.Equal(t, []data.PathWord{{Name: "Action", PathWord: "action"}}, comics[1].Theme)
}

func TestChapters(t *testing.T) {
	body := `{"results":{"list":[{"index":0,"uuid":"c1","count":2,"size":30,"name":"第1话"},{"index":1,"uuid":"c2","count":2,"size":28,"name":"第2话"}]}}`

	chapters, err := Chapters([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []data.ChapterInfo{
		{Index: 0, UUID: "c1", Count: 2, Size: 30, Name: "第1话"},
		{Index: 1, UUID: "c2", Count: 2, Size: 28, Name: "第2话"},
	}, chapters)
}

func TestChapters_MissingList(t *testing.T) {
	chapters, err := Chapters([]byte(`{"results":{}}`))
	require.NoError(t, err)
	assert.Nil(t, chapters)
}

func TestComicDetail(t *testing.T) {
	body := `{"results":{"comic":{"name":"One","uuid":"u1","brief":"pirates","region":{"value":1,"display":"韩国"}},"groups":{}}}`

	comic, err := ComicDetail([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, data.Comic{Name: "One", UUID: "u1", Brief: "pirates", Region: data.Display{Value: 1, Display: "韩国"}}, comic)
}

func TestBookInfo(t *testing.T) {
	body := `{"results":{"comic":{
		"name":"One","uuid":"u1","cover":"https://img/one.jpg","brief":"pirates",
		"author":[{"name":"Oda","path_word":"oda"},{"name":"Eiichiro","path_word":"eiichiro"}],
		"theme":[{"name":"Action","path_word":"action"},{"name":"Adventure","path_word":"adventure"}]
	}}}`

	info, err := BookInfo([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, data.BookInfo{
		Series:      "One",
		Author:      "Oda, Eiichiro",
		Description: "pirates",
		Genre:       "Action, Adventure",
		Cover:       "https://img/one.jpg",
	}, info)
}

func TestBookInfo_MissingComic(t *testing.T) {
	info, err := BookInfo([]byte(`{"code":404,"results":{}}`))
	require.NoError(t, err)
	assert.Equal(t, data.BookInfo{}, info)

	_, err = BookInfo([]byte(`{"results":{"comic":`))
	assert.True(t, hydrate.IsParseError(err))
}

func TestProgress(t *testing.T) {
	body := `[{"pathWord":"one","chapter":{"index":3,"uuid":"c4","name":"Ch 4"},"bookInfo":{"Series":"One","Author":"Oda"},"progress":37.5},{"pathWord":"two","progress":0}]`

	list, err := Progress([]byte(body))
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NotNil(t, list[0].Chapter)
	assert.Equal(t, "c4", list[0].Chapter.UUID)
	assert.Equal(t, &data.BookInfo{Series: "One", Author: "Oda"}, list[0].BookInfo)
	assert.InDelta(t, 37.5, list[0].Progress, 1e-9)

	assert.Nil(t, list[1].Chapter)
	assert.Nil(t, list[1].BookInfo)
}

func TestExtract(t *testing.T) {
	v, err := Extract([]byte(searchBody), "results.total")
	require.NoError(t, err)
	n, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, "2", n.String())

	v, err = Extract([]byte(searchBody), "results.nothing")
	require.NoError(t, err)
	assert.Equal(t, hydrate.KindAbsent, v.Kind())

	v, err = Extract([]byte(`[1,2]`), "")
	require.NoError(t, err)
	assert.Equal(t, hydrate.KindSequence, v.Kind())
}

func TestExtract_Malformed(t *testing.T) {
	for _, path := range []string{"", ListPath} {
		_, err := Extract([]byte(`{"results":`), path)
		assert.True(t, hydrate.IsParseError(err), path)
	}

	_, err := SearchResults([]byte(`{"results":{"list":[}}`))
	assert.True(t, hydrate.IsParseError(err))
}

func TestExtract_DeeplyNested(t *testing.T) {
	body := []byte(`{"results":` + strings.Repeat("[", 1_000_000) + strings.Repeat("]", 1_000_000) + `}`)

	for _, path := range []string{"", ListPath} {
		_, err := Extract(body, path)
		assert.True(t, hydrate.IsParseError(err), path)
	}
	_, err := SearchResults(body)
	assert.True(t, hydrate.IsParseError(err))
}

func TestToken(t *testing.T) {
	assert.Equal(t, "abc123", Token([]byte(`{"code":200,"results":{"token":"abc123","user_id":"u"}}`)))
	assert.Empty(t, Token([]byte(`{"code":400,"message":"bad password"}`)))
}

func TestRateLimited(t *testing.T) {
	assert.True(t, RateLimited([]byte(`{"code":210,"message":"Request was throttled. Expected available in 30 seconds."}`)))
	assert.False(t, RateLimited([]byte(`{"code":200,"message":"请求成功"}`)))
	assert.False(t, RateLimited([]byte(`not json`)))
}
