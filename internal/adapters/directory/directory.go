// Package directory serves users, extensions and streaming sources from a
// YAML file loaded at startup.
package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/dkeye/ctinotify/internal/domain"
)

var (
	ErrUnknownSource      = errors.New("unknown streaming source")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	PasswordHash string   `yaml:"password_hash"`
	Extensions   []string `yaml:"extensions"`
	AutoAnswer   bool     `yaml:"auto_answer"`
	Phonebook    bool     `yaml:"phonebook"`
	Streaming    []string `yaml:"streaming"`
}

type Extension struct {
	Webrtc     bool `yaml:"webrtc"`
	AutoAnswer bool `yaml:"auto_answer"`
}

type file struct {
	Users      map[string]User                   `yaml:"users"`
	Extensions map[string]Extension              `yaml:"extensions"`
	Streaming  map[string]domain.StreamingSource `yaml:"streaming"`
}

// Directory is immutable after Parse and safe for concurrent use.
type Directory struct {
	users      map[string]User
	extensions map[string]Extension
	owners     map[string][]string
	byNumber   map[string]domain.StreamingSource
}

// Empty returns a directory that knows nobody.
func Empty() *Directory {
	d, _ := Parse(nil)
	return d
}

func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "directory").Str("file", path).Int("users", len(d.users)).Int("streaming", len(d.byNumber)).Msg("directory loaded")
	return d, nil
}

func Parse(data []byte) (*Directory, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}

	d := &Directory{
		users:      f.Users,
		extensions: f.Extensions,
		owners:     make(map[string][]string),
		byNumber:   make(map[string]domain.StreamingSource),
	}
	if d.users == nil {
		d.users = map[string]User{}
	}
	if d.extensions == nil {
		d.extensions = map[string]Extension{}
	}
	for name, u := range d.users {
		for _, ext := range u.Extensions {
			d.owners[ext] = append(d.owners[ext], name)
		}
	}
	for ext := range d.owners {
		slices.Sort(d.owners[ext])
	}
	for id, src := range f.Streaming {
		src.ID = id
		if src.Number == "" {
			return nil, fmt.Errorf("parse directory: streaming source %q has no number", id)
		}
		d.byNumber[src.Number] = src
	}
	return d, nil
}

// Authenticate checks a password against the stored bcrypt hash.
func (d *Directory) Authenticate(username, password string) error {
	u, ok := d.users[username]
	if !ok || u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// UsersOwningExtension returns the owners sorted by name.
func (d *Directory) UsersOwningExtension(_ context.Context, exten string) ([]string, error) {
	return slices.Clone(d.owners[exten]), nil
}

func (d *Directory) IsWebrtcExtension(_ context.Context, exten string) (bool, error) {
	return d.extensions[exten].Webrtc, nil
}

func (d *Directory) AgentSupportsAutoAnswer(_ context.Context, exten string) (bool, error) {
	return d.extensions[exten].AutoAnswer, nil
}

func (d *Directory) HasStreamingAuthorization(_ context.Context, username, sourceID string) (bool, error) {
	return slices.Contains(d.users[username].Streaming, sourceID), nil
}

func (d *Directory) AutoAnswerEnabled(_ context.Context, username string) (bool, error) {
	return d.users[username].AutoAnswer, nil
}

func (d *Directory) HasPhonebookAuthorization(_ context.Context, username string) (bool, error) {
	return d.users[username].Phonebook, nil
}

func (d *Directory) IsStreamingSource(_ context.Context, number string) (bool, error) {
	_, ok := d.byNumber[number]
	return ok, nil
}

func (d *Directory) SourceDescriptor(_ context.Context, number string) (domain.StreamingSource, error) {
	src, ok := d.byNumber[number]
	if !ok {
		return domain.StreamingSource{}, fmt.Errorf("%w: %s", ErrUnknownSource, number)
	}
	return src, nil
}
