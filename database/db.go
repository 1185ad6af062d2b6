package database

import (
	"database/sql"
	"log"
	"sync"

	"github.com/kitpack/kitpack/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, err
	}
	err = createOrderTable(db)
	if err != nil {
		return nil, err
	}
	err = createComponentTable(db)
	if err != nil {
		return nil, err
	}
	err = createBOMTable(db)
	if err != nil {
		return nil, err
	}
	err = createUsageLedgerTable(db)
	if err != nil {
		return nil, err
	}
	err = createStockAdjustmentTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createOrderTable creates a PostgreSQL table for orders. Line items are
// stored denormalized as JSONB; their array order is significant and fixed at
// creation time.
func createOrderTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_id TEXT NOT NULL UNIQUE,
			order_number TEXT NOT NULL UNIQUE,
			customer_name TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			line_items JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func createComponentTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS components (
			id SERIAL PRIMARY KEY,
			component_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			unit TEXT,
			current_stock BIGINT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
			min_stock_alert BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func createBOMTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS bill_of_materials (
			id SERIAL PRIMARY KEY,
			entry_id TEXT NOT NULL UNIQUE,
			product_id TEXT NOT NULL,
			component_id TEXT NOT NULL REFERENCES components(component_id),
			quantity_per_unit BIGINT NOT NULL CHECK (quantity_per_unit > 0),
			optional BOOLEAN NOT NULL DEFAULT FALSE
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_bill_of_materials_product ON bill_of_materials(product_id)`)
	return err
}

func createUsageLedgerTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS usage_ledger (
			id SERIAL PRIMARY KEY,
			entry_id TEXT NOT NULL UNIQUE,
			order_id TEXT NOT NULL REFERENCES orders(order_id),
			component_id TEXT NOT NULL REFERENCES components(component_id),
			quantity_used BIGINT NOT NULL CHECK (quantity_used > 0),
			recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_usage_ledger_order ON usage_ledger(order_id)`)
	return err
}

func createStockAdjustmentTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stock_adjustments (
			id SERIAL PRIMARY KEY,
			adjustment_id TEXT NOT NULL UNIQUE,
			component_id TEXT NOT NULL REFERENCES components(component_id),
			quantity_change BIGINT NOT NULL,
			reason TEXT NOT NULL,
			adjusted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
