package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gametech/walletledger/internal/application/ports"
	"github.com/gametech/walletledger/internal/domain/entities"
	domainErrors "github.com/gametech/walletledger/internal/domain/errors"
)

// Compile-time check
var _ ports.AssetTypeRepository = (*AssetTypeRepository)(nil)

// AssetTypeRepository implements ports.AssetTypeRepository.
type AssetTypeRepository struct {
	pool *pgxpool.Pool
}

// NewAssetTypeRepository creates the repository.
func NewAssetTypeRepository(pool *pgxpool.Pool) *AssetTypeRepository {
	return &AssetTypeRepository{pool: pool}
}

func (r *AssetTypeRepository) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const assetTypeColumns = `id, code, display_name, is_active, created_at, updated_at`

// FindByCode loads an asset type by its unique code. The match is
// case-sensitive.
func (r *AssetTypeRepository) FindByCode(ctx context.Context, code string) (*entities.AssetType, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + assetTypeColumns + ` FROM asset_types WHERE code = $1`
	return r.scanAssetType(q.QueryRow(ctx, query, code))
}

// FindByID loads an asset type by id.
func (r *AssetTypeRepository) FindByID(ctx context.Context, id int) (*entities.AssetType, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + assetTypeColumns + ` FROM asset_types WHERE id = $1`
	return r.scanAssetType(q.QueryRow(ctx, query, id))
}

// List returns all asset types ordered by id.
func (r *AssetTypeRepository) List(ctx context.Context) ([]*entities.AssetType, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + assetTypeColumns + ` FROM asset_types ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query asset types: %w", err)
	}
	defer rows.Close()

	var result []*entities.AssetType
	for rows.Next() {
		asset, err := r.scanAssetType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}

func (r *AssetTypeRepository) scanAssetType(row pgx.Row) (*entities.AssetType, error) {
	var a entities.AssetType
	err := row.Scan(&a.ID, &a.Code, &a.DisplayName, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAssetUnknown
		}
		return nil, fmt.Errorf("scan asset type: %w", err)
	}
	return &a, nil
}
