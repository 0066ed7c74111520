package database

// Repository exposes typed CRUD over the store. Every operation bootstraps
// the schema first, so a fresh file is usable without a separate setup step.
type Repository struct {
	store *Store
}

func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Store() *Store {
	return r.store
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
