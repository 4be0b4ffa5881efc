package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, customer_id, customer_name, user_id, user_name, subtotal, tax, discount, total, payment_method, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL
// (usable con pool o tx). Las ventas son write-once: solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y todas las líneas de la venta. Debe llamarse
// dentro de la transacción de venta para que cabecera y líneas sean atómicas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, nullIfEmpty(sale.CustomerID), sale.CustomerName, sale.UserID, sale.UserName,
		sale.Subtotal, sale.Tax, sale.Discount, sale.Total, sale.PaymentMethod, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, line := range sale.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_lines (sale_id, position, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, i, line.ProductID, line.ProductName, line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	var customerID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &customerID, &s.CustomerName, &s.UserID, &s.UserName,
		&s.Subtotal, &s.Tax, &s.Discount, &s.Total, &s.PaymentMethod, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	lines, err := r.loadLines([]string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Lines = lines[s.ID]
	return &s, nil
}

// List devuelve ventas (con líneas) ordenadas por created_at descendente.
func (r *SaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(&s.ID, &customerID, &s.CustomerName, &s.UserID, &s.UserName,
			&s.Subtotal, &s.Tax, &s.Discount, &s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if customerID != nil {
			s.CustomerID = *customerID
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.loadLines(ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Lines = lines[s.ID]
	}
	return list, nil
}

// loadLines carga las líneas de un conjunto de ventas en una sola consulta.
func (r *SaleRepo) loadLines(saleIDs []string) (map[string][]entity.SaleLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = ANY($1) ORDER BY sale_id, position`,
		saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("load sale lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.SaleLine, len(saleIDs))
	for rows.Next() {
		var saleID string
		var l entity.SaleLine
		if err := rows.Scan(&saleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out[saleID] = append(out[saleID], l)
	}
	return out, rows.Err()
}
