package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// isNoRows informa si el error es "sin filas"; los repositorios lo traducen
// al contrato (nil, nil).
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation informa si el error es una violación de unicidad (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// nullSiVacio mapea "" a NULL para columnas con FK opcional.
func nullSiVacio(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// contarPorEstado ejecuta un GROUP BY estado y lo devuelve como mapa.
func contarPorEstado(ctx context.Context, pool *pgxpool.Pool, query, entidad string) (map[string]int, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contar %s por estado: %w", entidad, err)
	}
	defer rows.Close()

	conteo := make(map[string]int)
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("escanear conteo de %s: %w", entidad, err)
		}
		conteo[estado] = n
	}
	return conteo, rows.Err()
}
