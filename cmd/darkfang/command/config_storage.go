package command

import (
	"fmt"
	"os"

	"github.com/darkfang/darkfang/internal/game"
	"github.com/darkfang/darkfang/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Players    AssetConfig[*game.Player]       `json:"players"`
	Characters AssetConfig[*game.Character]    `json:"characters"`
	Rooms      AssetConfig[*game.Room]         `json:"rooms"`
	Items      AssetConfig[*game.ItemTemplate] `json:"items"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Players.Validate("players"))
	el.Add(c.Characters.Validate("characters"))
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
