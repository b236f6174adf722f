package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "embed"

	"reservas-admin/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// PostgresStore keeps each document as one jsonb row keyed by
// (collection, id). Filters and orderings are compiled to casts over the
// jsonb body, backed by the expression indexes in schema.sql.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema applies the embedded schema under an advisory lock so that
// concurrent replicas do not race each other at startup.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to acquire connection for schema setup")
	}
	defer conn.Release()

	const advisoryLockID int64 = 726354810
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockID); err != nil {
		return errs.Wrap(err, "failed to acquire schema lock")
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockID)
	}()

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return errs.Wrap(err, "failed to apply schema")
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, fields Fields) (uuid.UUID, error) {
	body, err := marshalFields(fields)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3)`,
		collection, id, body,
	)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to insert document")
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection string, id uuid.UUID) (Document, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&body)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Document{}, ErrNotFound
		}
		return Document{}, errs.Wrap(err, "failed to get document")
	}

	fields, err := unmarshalFields(body)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: fields}, nil
}

func (s *PostgresStore) Update(ctx context.Context, collection string, id uuid.UUID, partial Fields) error {
	body, err := marshalFields(partial)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET body = body || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, body,
	)
	if err != nil {
		return errs.Wrap(err, "failed to update document")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	// Deleting a missing document is a no-op.
	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return errs.Wrap(err, "failed to delete document")
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	sql, args, err := buildFindQuery(collection, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to query documents")
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id uuid.UUID
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, errs.Wrap(err, "failed to scan document row")
		}
		fields, err := unmarshalFields(body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "failed to iterate document rows")
	}
	return docs, nil
}

func buildFindQuery(collection string, q Query) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, body FROM documents WHERE collection = $1`)
	args := []any{collection}

	for _, f := range q.Filters {
		expr, arg, err := fieldExpr(f.Field, f.Value)
		if err != nil {
			return "", nil, err
		}
		var op string
		switch f.Op {
		case OpEqual:
			op = "="
		case OpGreaterOrEqual:
			op = ">="
		case OpLessOrEqual:
			op = "<="
		default:
			return "", nil, errs.New("unsupported filter op: " + string(f.Op))
		}
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND %s %s $%d", expr, op, len(args))
	}

	if q.OrderBy.Field != "" && !fieldNamePattern.MatchString(q.OrderBy.Field) {
		return "", nil, errs.New("invalid order field: " + q.OrderBy.Field)
	}

	dir := "ASC"
	cmp := ">"
	if q.OrderBy.Desc {
		dir = "DESC"
		cmp = "<"
	}

	if q.StartAfter != nil && q.OrderBy.Field != "" {
		cursorVal, ok := q.StartAfter.Fields[q.OrderBy.Field]
		if !ok {
			return "", nil, errs.New("cursor document missing order field: " + q.OrderBy.Field)
		}
		expr := orderFieldExpr(q.OrderBy)
		arg, err := orderFieldArg(q.OrderBy, cursorVal)
		if err != nil {
			return "", nil, err
		}
		args = append(args, arg)
		valIdx := len(args)
		args = append(args, q.StartAfter.ID)
		fmt.Fprintf(&sb, " AND (%s, id) %s ($%d, $%d)", expr, cmp, valIdx, valIdx+1)
	}

	orderExpr := "id " + dir
	if q.OrderBy.Field != "" {
		orderExpr = fmt.Sprintf("%s %s, id %s", orderFieldExpr(q.OrderBy), dir, dir)
	}
	sb.WriteString(" ORDER BY " + orderExpr)

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	return sb.String(), args, nil
}

func orderFieldExpr(order OrderBy) string {
	accessor := fmt.Sprintf("body->>'%s'", order.Field)
	if order.AsTimestamp {
		return "(" + accessor + ")::timestamptz"
	}
	return accessor
}

func orderFieldArg(order OrderBy, cursorVal any) (any, error) {
	if !order.AsTimestamp {
		return cursorVal, nil
	}
	t, ok := asTime(cursorVal)
	if !ok {
		return nil, errs.New("cursor order field is not a timestamp: " + order.Field)
	}
	return t, nil
}

// fieldExpr returns the cast jsonb accessor for a field together with the
// normalized argument. Timestamps may arrive as their RFC3339 round-trip
// string and are still compared as timestamptz.
func fieldExpr(field string, value any) (string, any, error) {
	if !fieldNamePattern.MatchString(field) {
		return "", nil, errs.New("invalid field name: " + field)
	}
	accessor := fmt.Sprintf("body->>'%s'", field)

	if t, ok := asTime(value); ok {
		return "(" + accessor + ")::timestamptz", t, nil
	}
	if n, ok := asNumber(value); ok {
		return "(" + accessor + ")::numeric", n, nil
	}
	if b, ok := value.(bool); ok {
		return "(" + accessor + ")::boolean", b, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", nil, errs.New("unsupported filter value for field: " + field)
	}
	return accessor, s, nil
}

func marshalFields(fields Fields) ([]byte, error) {
	normalized := make(map[string]any, len(fields))
	for k, v := range fields {
		if t, ok := v.(time.Time); ok {
			v = t.UTC().Format(time.RFC3339Nano)
		}
		normalized[k] = v
	}
	body, err := json.Marshal(normalized)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal document fields")
	}
	return body, nil
}

func unmarshalFields(body []byte) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal document body")
	}
	return fields, nil
}
