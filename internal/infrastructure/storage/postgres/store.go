package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
	"factura/internal/domain/billing"
	"factura/internal/domain/clients"
)

// Compile-time check that Store implements the storage port.
var _ billing.Store = (*Store)(nil)

// Store persists the invoice, draft and client collections in PostgreSQL.
//
// The storage port works in whole collections: reads load everything, writes
// replace everything. Replacement runs as delete-then-bulk-insert inside one
// transaction, so readers never observe a partially replaced collection.
type Store struct {
	txManager *TxManager
}

// NewStore creates a PostgreSQL-backed store.
func NewStore(txManager *TxManager) *Store {
	return &Store{txManager: txManager}
}

// builder returns a squirrel builder with PostgreSQL placeholder format.
func (s *Store) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// invoiceRow mirrors the invoices table.
type invoiceRow struct {
	ID               string      `db:"id"`
	ClientName       string      `db:"client_name"`
	ClientPhone      string      `db:"client_phone"`
	ClientAddress    string      `db:"client_address"`
	DeliveryLocation string      `db:"delivery_location"`
	DeliveryMethod   string      `db:"delivery_method"`
	CreatedBy        string      `db:"created_by"`
	FeePercentage    int         `db:"fee_percentage"`
	Subtotal         types.Money `db:"subtotal"`
	Fees             types.Money `db:"fees"`
	Transport        types.Money `db:"transport"`
	Total            types.Money `db:"total"`
	CreationDate     time.Time   `db:"creation_date"`
}

// articleRow mirrors the invoice_articles and draft_articles tables.
type articleRow struct {
	DocumentID  string      `db:"document_id"`
	LineNo      int         `db:"line_no"`
	Description string      `db:"description"`
	ImageURL    string      `db:"image_url"`
	Quantity    int         `db:"quantity"`
	UnitPrice   types.Money `db:"unit_price"`
	WeightCbm   types.Money `db:"weight_cbm"`
	ItemLink    string      `db:"item_link"`
}

// draftRow mirrors the drafts table.
type draftRow struct {
	ID               string      `db:"id"`
	ClientName       string      `db:"client_name"`
	ClientPhone      string      `db:"client_phone"`
	ClientAddress    string      `db:"client_address"`
	DeliveryLocation string      `db:"delivery_location"`
	DeliveryMethod   string      `db:"delivery_method"`
	CreatedBy        string      `db:"created_by"`
	FeePercentage    int         `db:"fee_percentage"`
	Transport        types.Money `db:"transport"`
	CreationDate     time.Time   `db:"creation_date"`
	LastModified     time.Time   `db:"last_modified"`
}

func toArticle(r articleRow) billing.Article {
	return billing.Article{
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		WeightCbm:   r.WeightCbm,
		ItemLink:    r.ItemLink,
	}
}

// loadArticles reads all line rows of table and groups them by document id.
// Rows come back ordered by line number, so the grouped slices preserve the
// original article order.
func (s *Store) loadArticles(ctx context.Context, table string) (map[string][]billing.Article, error) {
	sql, args, err := s.builder().
		Select("document_id", "line_no", "description", "image_url", "quantity", "unit_price", "weight_cbm", "item_link").
		From(table).
		OrderBy("document_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}

	var rows []articleRow
	if err := pgxscan.Select(ctx, s.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	grouped := make(map[string][]billing.Article)
	for _, r := range rows {
		grouped[r.DocumentID] = append(grouped[r.DocumentID], toArticle(r))
	}
	return grouped, nil
}

// insertArticles bulk-inserts the line rows of one document.
func (s *Store) insertArticles(ctx context.Context, table, documentID string, articles []billing.Article) error {
	if len(articles) == 0 {
		return nil
	}

	q := s.builder().
		Insert(table).
		Columns("document_id", "line_no", "description", "image_url", "quantity", "unit_price", "weight_cbm", "item_link")
	for i, a := range articles {
		q = q.Values(documentID, i+1, a.Description, a.ImageURL, a.Quantity, a.UnitPrice, a.WeightCbm, a.ItemLink)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", table, err)
	}
	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// Invoices loads the full invoice collection ordered by creation date.
func (s *Store) Invoices(ctx context.Context) ([]billing.Invoice, error) {
	var invoices []billing.Invoice

	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		sql, args, err := s.builder().
			Select("id", "client_name", "client_phone", "client_address",
				"delivery_location", "delivery_method", "created_by",
				"fee_percentage", "subtotal", "fees", "transport", "total", "creation_date").
			From("invoices").
			OrderBy("creation_date", "id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build select invoices: %w", err)
		}

		var rows []invoiceRow
		if err := pgxscan.Select(ctx, s.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
			return fmt.Errorf("select invoices: %w", err)
		}

		articles, err := s.loadArticles(ctx, "invoice_articles")
		if err != nil {
			return err
		}

		invoices = make([]billing.Invoice, len(rows))
		for i, r := range rows {
			invoices[i] = billing.Invoice{
				ID:               r.ID,
				ClientName:       r.ClientName,
				ClientPhone:      r.ClientPhone,
				ClientAddress:    r.ClientAddress,
				DeliveryLocation: r.DeliveryLocation,
				DeliveryMethod:   r.DeliveryMethod,
				CreatedBy:        r.CreatedBy,
				Articles:         articles[r.ID],
				FeePercentage:    r.FeePercentage,
				Subtotal:         r.Subtotal,
				Fees:             r.Fees,
				Transport:        r.Transport,
				Total:            r.Total,
				CreationDate:     r.CreationDate,
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.NewPersistence("load invoices", err)
	}
	return invoices, nil
}

// SetInvoices replaces the persisted invoice collection.
func (s *Store) SetInvoices(ctx context.Context, invoices []billing.Invoice) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := s.txManager.GetQuerier(ctx)
		if _, err := querier.Exec(ctx, "DELETE FROM invoice_articles"); err != nil {
			return fmt.Errorf("clear invoice_articles: %w", err)
		}
		if _, err := querier.Exec(ctx, "DELETE FROM invoices"); err != nil {
			return fmt.Errorf("clear invoices: %w", err)
		}

		for _, inv := range invoices {
			sql, args, err := s.builder().
				Insert("invoices").
				Columns("id", "client_name", "client_phone", "client_address",
					"delivery_location", "delivery_method", "created_by",
					"fee_percentage", "subtotal", "fees", "transport", "total", "creation_date").
				Values(inv.ID, inv.ClientName, inv.ClientPhone, inv.ClientAddress,
					inv.DeliveryLocation, inv.DeliveryMethod, inv.CreatedBy,
					inv.FeePercentage, inv.Subtotal, inv.Fees, inv.Transport, inv.Total, inv.CreationDate).
				ToSql()
			if err != nil {
				return fmt.Errorf("build insert invoices: %w", err)
			}
			if _, err := querier.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("insert invoice %s: %w", inv.ID, err)
			}
			if err := s.insertArticles(ctx, "invoice_articles", inv.ID, inv.Articles); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperror.NewPersistence("store invoices", err)
	}
	return nil
}

// Drafts loads the full draft collection ordered by creation date.
func (s *Store) Drafts(ctx context.Context) ([]billing.Draft, error) {
	var drafts []billing.Draft

	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		sql, args, err := s.builder().
			Select("id", "client_name", "client_phone", "client_address",
				"delivery_location", "delivery_method", "created_by",
				"fee_percentage", "transport", "creation_date", "last_modified").
			From("drafts").
			OrderBy("creation_date", "id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build select drafts: %w", err)
		}

		var rows []draftRow
		if err := pgxscan.Select(ctx, s.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
			return fmt.Errorf("select drafts: %w", err)
		}

		articles, err := s.loadArticles(ctx, "draft_articles")
		if err != nil {
			return err
		}

		drafts = make([]billing.Draft, len(rows))
		for i, r := range rows {
			drafts[i] = billing.Draft{
				ID:               r.ID,
				ClientName:       r.ClientName,
				ClientPhone:      r.ClientPhone,
				ClientAddress:    r.ClientAddress,
				DeliveryLocation: r.DeliveryLocation,
				DeliveryMethod:   r.DeliveryMethod,
				CreatedBy:        r.CreatedBy,
				Articles:         articles[r.ID],
				FeePercentage:    r.FeePercentage,
				Transport:        r.Transport,
				CreationDate:     r.CreationDate,
				LastModified:     r.LastModified,
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.NewPersistence("load drafts", err)
	}
	return drafts, nil
}

// SetDrafts replaces the persisted draft collection.
func (s *Store) SetDrafts(ctx context.Context, drafts []billing.Draft) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := s.txManager.GetQuerier(ctx)
		if _, err := querier.Exec(ctx, "DELETE FROM draft_articles"); err != nil {
			return fmt.Errorf("clear draft_articles: %w", err)
		}
		if _, err := querier.Exec(ctx, "DELETE FROM drafts"); err != nil {
			return fmt.Errorf("clear drafts: %w", err)
		}

		for _, d := range drafts {
			sql, args, err := s.builder().
				Insert("drafts").
				Columns("id", "client_name", "client_phone", "client_address",
					"delivery_location", "delivery_method", "created_by",
					"fee_percentage", "transport", "creation_date", "last_modified").
				Values(d.ID, d.ClientName, d.ClientPhone, d.ClientAddress,
					d.DeliveryLocation, d.DeliveryMethod, d.CreatedBy,
					d.FeePercentage, d.Transport, d.CreationDate, d.LastModified).
				ToSql()
			if err != nil {
				return fmt.Errorf("build insert drafts: %w", err)
			}
			if _, err := querier.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("insert draft %s: %w", d.ID, err)
			}
			if err := s.insertArticles(ctx, "draft_articles", d.ID, d.Articles); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperror.NewPersistence("store drafts", err)
	}
	return nil
}

// Clients loads the read-only client catalog ordered by name.
func (s *Store) Clients(ctx context.Context) ([]clients.Client, error) {
	sql, args, err := s.builder().
		Select("id", "name", "phone", "address").
		From("clients").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, apperror.NewPersistence("load clients", err)
	}

	var result []clients.Client
	if err := pgxscan.Select(ctx, s.txManager.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, apperror.NewPersistence("load clients", err)
	}
	return result, nil
}
