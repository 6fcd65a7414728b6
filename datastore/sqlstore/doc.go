/*
Package sqlstore provides a SQLite implementation of the DataStore interface
built on the pure Go modernc.org/sqlite driver.

Usage:

	db, err := sqlstore.Open(ctx, cfg.SQLiteDSN)
	if err != nil {
	    return err
	}
	defer db.Close()

	storage := entityfactory.NewStorage()
	entityfactory.RegisterDataStore[Account](storage, sqlstore.New[Account](db))

All entity types share one table keyed by type name and entity key.
*/
package sqlstore
