// Package storage provides Storage backends for simpleprefs stores.
//
// Every backend keys entries by (store, key), returns simpleprefs.ErrNotFound for
// missing entries and implements Clear as a single atomic statement or command.
package storage

import (
	"github.com/CreativeUnicorns/simpleprefs"
)

var (
	_ simpleprefs.Storage = (*MemoryStorage)(nil)
	_ simpleprefs.Storage = (*SQLiteStorage)(nil)
	_ simpleprefs.Storage = (*PostgresStorage)(nil)
	_ simpleprefs.Storage = (*RedisStorage)(nil)
)
