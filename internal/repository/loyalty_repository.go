package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
)

type loyaltyRepository struct {
	q       *db.Queries
	starter txStarter
}

func NewLoyalty(pool *pgxpool.Pool) port.LoyaltyRepository {
	return &loyaltyRepository{
		q:       db.New(pool),
		starter: pool,
	}
}

func NewLoyaltyWithTx(tx pgx.Tx) port.LoyaltyRepository {
	return &loyaltyRepository{
		q:       db.New(tx),
		starter: tx,
	}
}

type appendResult struct {
	tx      domain.LoyaltyTransaction
	balance int64
}

func (r *loyaltyRepository) AppendTransaction(ctx context.Context, tx domain.LoyaltyTransaction) (domain.LoyaltyTransaction, int64, error) {
	if tx.CustomerID == uuid.Nil {
		return domain.LoyaltyTransaction{}, 0, fmt.Errorf("customerID is empty")
	}
	if tx.Delta == 0 {
		return domain.LoyaltyTransaction{}, 0, fmt.Errorf("delta is zero")
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	res, err := withTx(ctx, r.starter, func(q *db.Queries) (appendResult, error) {
		createdAt, err := q.InsertLoyaltyTransaction(ctx, db.InsertLoyaltyTransactionParams{
			ID:          tx.ID,
			CustomerID:  tx.CustomerID,
			OrderID:     tx.OrderID,
			Delta:       tx.Delta,
			Type:        string(tx.Type),
			Description: tx.Description,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return appendResult{}, domain.ErrAlreadyRecorded
		}
		if err != nil {
			return appendResult{}, fmt.Errorf("q.InsertLoyaltyTransaction: %w", err)
		}

		var balance int64
		if tx.Delta < 0 {
			balance, err = q.DebitCustomerPoints(ctx, db.DebitCustomerPointsParams{
				Points: -tx.Delta,
				ID:     tx.CustomerID,
			})
			if errors.Is(err, pgx.ErrNoRows) {
				return appendResult{}, domain.ErrInsufficientPoints
			}
			if err != nil {
				return appendResult{}, fmt.Errorf("q.DebitCustomerPoints: %w", err)
			}
		} else {
			balance, err = q.CreditCustomerPoints(ctx, db.CreditCustomerPointsParams{
				Points: tx.Delta,
				ID:     tx.CustomerID,
			})
			if err != nil {
				return appendResult{}, fmt.Errorf("q.CreditCustomerPoints: %w", notFound(err))
			}
		}

		stored := tx
		stored.CreatedAt = createdAt
		return appendResult{tx: stored, balance: balance}, nil
	})
	if err != nil {
		return domain.LoyaltyTransaction{}, 0, err
	}

	return res.tx, res.balance, nil
}

func (r *loyaltyRepository) ListTransactions(ctx context.Context, customerID uuid.UUID) ([]domain.LoyaltyTransaction, error) {
	rows, err := r.q.ListLoyaltyTransactions(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListLoyaltyTransactions: %w", err)
	}

	txs := make([]domain.LoyaltyTransaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, domain.LoyaltyTransaction{
			ID:          row.ID,
			CustomerID:  row.CustomerID,
			OrderID:     row.OrderID,
			Delta:       row.Delta,
			Type:        domain.LoyaltyType(row.Type),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
	}

	return txs, nil
}

func (r *loyaltyRepository) SumDeltas(ctx context.Context, customerID uuid.UUID) (int64, error) {
	sum, err := r.q.SumLoyaltyDeltas(ctx, customerID)
	if err != nil {
		return 0, fmt.Errorf("q.SumLoyaltyDeltas: %w", err)
	}
	return sum, nil
}
