package data

import "fmt"

// BookInfo is the series-level metadata shown before a download starts.
// Its wire keys are the Go field names.
type BookInfo struct {
	Series      string
	Author      string
	Description string
	Genre       string
	Title       string
	Cover       string
}

type ChapterInfo struct {
	Index int    `json:"index"`
	UUID  string `json:"uuid"`
	Count int    `json:"count"`
	Size  int    `json:"size"`
	Name  string `json:"name"`
}

// Display is a value paired with its human label, e.g. a region.
type Display struct {
	Value   int    `json:"value"`
	Display string `json:"display"`
}

// PathWord pairs a label with the identifier used in backend URLs.
type PathWord struct {
	Name     string `json:"name"`
	PathWord string `json:"path_word"`
}

type Comic struct {
	Name     string     `json:"name"`
	UUID     string     `json:"uuid"`
	Cover    string     `json:"cover"`
	PathWord string     `json:"path_word"`
	Author   []PathWord `json:"author"`
	Theme    []PathWord `json:"theme"`
	Brief    string     `json:"brief"`
	Region   Display    `json:"region"`
}

// User holds account credentials. Password and Token must never be logged;
// use String or Redacted instead of printing the struct.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

const redacted = "******"

func (u User) String() string {
	return fmt.Sprintf("User(%s)", u.Username)
}

// GoString keeps %#v from leaking credentials.
func (u User) GoString() string { return u.String() }

// Redacted returns a copy with the secrets masked. Empty secrets stay empty
// so callers can still tell whether a token was issued.
func (u User) Redacted() User {
	u.Password = Mask(u.Password)
	u.Token = Mask(u.Token)
	return u
}

// Mask hides a non-empty credential.
func Mask(secret string) string {
	if secret == "" {
		return secret
	}
	return redacted
}

// Config is the downloader configuration root persisted as config.json.
type Config struct {
	URLBase     string  `json:"urlBase"`
	OutputPath  string  `json:"outputPath"`
	PackageType string  `json:"packageType"`
	UserList    []*User `json:"userList"`
	NamingStyle string  `json:"namingStyle"`
}

// Redacted returns a copy whose users have their secrets masked.
func (c Config) Redacted() Config {
	users := make([]*User, len(c.UserList))
	for i, u := range c.UserList {
		if u == nil {
			continue
		}
		r := u.Redacted()
		users[i] = &r
	}
	c.UserList = users
	return c
}

// DownloaderSingle is the progress snapshot of one chapter download.
// Chapter and BookInfo stay nil until the backend knows them.
type DownloaderSingle struct {
	PathWord string       `json:"pathWord"`
	Chapter  *ChapterInfo `json:"chapter"`
	BookInfo *BookInfo    `json:"bookInfo"`
	Progress float64      `json:"progress"`
}
