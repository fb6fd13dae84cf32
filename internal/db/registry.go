package db

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// Registry maps campus keys to their connection pools. It is built once at
// startup and is read-only afterwards, so lookups need no locking.
type Registry struct {
	databases map[string]*PostgresDB
}

// CampusDSN names one campus database.
type CampusDSN struct {
	Campus     string
	ConnString string
}

// OpenRegistry connects to every campus database. On failure, pools that
// were already opened are closed.
func OpenRegistry(ctx context.Context, campuses []CampusDSN, pool PoolConfig, log zerolog.Logger) (*Registry, error) {
	r := &Registry{databases: make(map[string]*PostgresDB, len(campuses))}
	for _, c := range campuses {
		database, err := NewPostgresDB(ctx, c.ConnString, pool, log.With().Str("campus", c.Campus).Logger())
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("campus %s: %w", c.Campus, err)
		}
		r.databases[normalize(c.Campus)] = database
		log.Info().Str("campus", c.Campus).Msg("Campus database connected")
	}
	return r, nil
}

// NewRegistry wraps already opened databases.
func NewRegistry(databases map[string]*PostgresDB) *Registry {
	r := &Registry{databases: make(map[string]*PostgresDB, len(databases))}
	for k, v := range databases {
		r.databases[normalize(k)] = v
	}
	return r
}

// Get returns the database of a campus.
func (r *Registry) Get(campus string) (*PostgresDB, error) {
	database, ok := r.databases[normalize(campus)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCampusNotFound, campus)
	}
	return database, nil
}

// Campuses lists the registered campus keys in sorted order.
func (r *Registry) Campuses() []string {
	keys := make([]string, 0, len(r.databases))
	for k := range r.databases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close closes every pool.
func (r *Registry) Close() {
	for _, database := range r.databases {
		database.Close()
	}
}

func normalize(campus string) string {
	return strings.ToLower(strings.TrimSpace(campus))
}
