package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

func (d Datasource) CreateComponent(ctx context.Context, cmp model.Component) (model.Component, error) {
	cmp.ComponentID = model.GenerateUUIDWithSuffix("cmp")
	cmp.CreatedAt = time.Now()

	_, err := d.Conn.ExecContext(ctx,
		`INSERT INTO components (component_id, name, unit, current_stock, min_stock_alert, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		cmp.ComponentID, cmp.Name, cmp.Unit, cmp.CurrentStock, cmp.MinStockAlert, cmp.CreatedAt,
	)
	if err != nil {
		return model.Component{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create component", err)
	}
	return cmp, nil
}

func (d Datasource) GetComponent(ctx context.Context, componentID string) (*model.Component, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, component_id, name, unit, current_stock, min_stock_alert, created_at
		FROM components
		WHERE component_id = $1
	`, componentID)

	cmp := &model.Component{}
	var unit sql.NullString
	err := row.Scan(&cmp.ID, &cmp.ComponentID, &cmp.Name, &unit, &cmp.CurrentStock, &cmp.MinStockAlert, &cmp.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Component with ID '%s' not found", componentID), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve component", err)
	}
	cmp.Unit = unit.String
	return cmp, nil
}

func (d Datasource) GetAllComponents(ctx context.Context) ([]model.Component, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, component_id, name, unit, current_stock, min_stock_alert, created_at
		FROM components
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve components", err)
	}
	defer rows.Close()

	return scanComponentRows(rows)
}

func (d Datasource) GetComponentStock(ctx context.Context, componentID string) (int64, error) {
	var stock int64
	err := d.Conn.QueryRowContext(ctx, `SELECT current_stock FROM components WHERE component_id = $1`, componentID).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Component with ID '%s' not found", componentID), err)
		}
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve component stock", err)
	}
	return stock, nil
}

func (d Datasource) GetLowStockComponents(ctx context.Context) ([]model.Component, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, component_id, name, unit, current_stock, min_stock_alert, created_at
		FROM components
		WHERE current_stock <= min_stock_alert
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve low stock components", err)
	}
	defer rows.Close()

	return scanComponentRows(rows)
}

// AdjustComponentStock applies a manual stock change and writes the audit row
// in the same transaction. A decrement that would drive stock negative is
// rejected whole.
func (d Datasource) AdjustComponentStock(ctx context.Context, componentID string, change int64, reason string) error {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin stock adjustment", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE components SET current_stock = current_stock + $1 WHERE component_id = $2 AND current_stock + $1 >= 0`,
		change, componentID,
	)
	if err != nil {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to adjust component stock", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to adjust component stock", err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Adjustment would drive component '%s' negative, or component is missing", componentID), nil)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stock_adjustments (adjustment_id, component_id, quantity_change, reason, adjusted_at) VALUES ($1, $2, $3, $4, $5)`,
		model.GenerateUUIDWithSuffix("adj"), componentID, change, reason, time.Now(),
	)
	if err != nil {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record stock adjustment", err)
	}

	if err := tx.Commit(); err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit stock adjustment", err)
	}
	return nil
}

func scanComponentRows(rows *sql.Rows) ([]model.Component, error) {
	var components []model.Component
	for rows.Next() {
		cmp := model.Component{}
		var unit sql.NullString
		err := rows.Scan(&cmp.ID, &cmp.ComponentID, &cmp.Name, &unit, &cmp.CurrentStock, &cmp.MinStockAlert, &cmp.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan component row", err)
		}
		cmp.Unit = unit.String
		components = append(components, cmp)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error iterating component rows", err)
	}
	return components, nil
}
