// Package simpleprefs is the runtime half of the simpleprefs code generator.
//
// Holder types marked with a //prefs:holder directive are compiled by the
// prefsgen command (see the compiler packages) into companion accessor types.
// The generated code binds to a Store handle obtained from a StoreContext,
// usually a Manager, and reads and writes typed values through it. Storage
// backends (in-memory, SQLite, PostgreSQL, Redis) live in the storage package,
// optional caching in the cache package.
package simpleprefs
