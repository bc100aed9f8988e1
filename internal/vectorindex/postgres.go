package vectorindex

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/jonathan/match-engine/internal/types"
)

// PostgresIndex stores vectors in a pgvector-enabled PostgreSQL database.
type PostgresIndex struct {
	pool *pgxpool.Pool
}

// NewPostgresIndex connects a pool to the database and registers the
// pgvector types on every connection.
func NewPostgresIndex(ctx context.Context, databaseURL string) (*PostgresIndex, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresIndex{pool: pool}, nil
}

// Migrate creates the vector table and its indexes if they do not exist.
func (p *PostgresIndex) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS embedding_records (
			id         text PRIMARY KEY,
			namespace  text NOT NULL,
			owner_id   text NOT NULL,
			embedding  vector(%d) NOT NULL,
			metadata   jsonb NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL DEFAULT now()
		)`, types.EmbeddingDimension),
		`CREATE INDEX IF NOT EXISTS embedding_records_owner_idx ON embedding_records (namespace, owner_id)`,
		`CREATE INDEX IF NOT EXISTS embedding_records_cosine_idx ON embedding_records
			USING hnsw (embedding vector_cosine_ops)`,
	}
	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return &IndexError{Op: "migrate", Cause: err}
		}
	}
	return nil
}

// UpsertJob replaces all vectors for job.JobID inside one transaction.
func (p *PostgresIndex) UpsertJob(ctx context.Context, job JobUpsert) error {
	meta := map[string]any{MetaJobID: job.JobID, MetaTitle: job.Title, MetaIsSkillVector: false}
	for k, v := range job.Metadata {
		meta[k] = v
	}

	rows := []record{{
		id:       job.JobID,
		ownerID:  job.JobID,
		vector:   job.Vector,
		metadata: meta,
	}}
	for _, skill := range job.Skills {
		rows = append(rows, record{
			id:      uuid.NewString(),
			ownerID: job.JobID,
			vector:  skill.Vector,
			metadata: map[string]any{
				MetaTitle:         job.Title,
				MetaSkill:         skill.Skill,
				MetaIsSkillVector: true,
			},
		})
	}

	if err := p.replaceOwner(ctx, NamespaceJobs, job.JobID, rows); err != nil {
		return &IndexError{Op: "upsert_job", Cause: err}
	}
	return nil
}

// UpsertUserSkills replaces all vectors for (userID, resumeID).
func (p *PostgresIndex) UpsertUserSkills(ctx context.Context, userID, resumeID string, skills []SkillUpsert) error {
	owner := userOwner(userID, resumeID)
	rows := make([]record, 0, len(skills))
	for _, skill := range skills {
		rows = append(rows, record{
			id:      uuid.NewString(),
			ownerID: owner,
			vector:  skill.Vector,
			metadata: map[string]any{
				MetaSkill:    skill.Skill,
				MetaUserID:   userID,
				MetaResumeID: resumeID,
			},
		})
	}

	if err := p.replaceOwner(ctx, NamespaceUsers, owner, rows); err != nil {
		return &IndexError{Op: "upsert_user_skills", Cause: err}
	}
	return nil
}

// replaceOwner deletes and re-inserts every row for an owner in one
// transaction, which is what makes upserts idempotent full replacements.
func (p *PostgresIndex) replaceOwner(ctx context.Context, namespace, ownerID string, rows []record) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM embedding_records WHERE namespace = $1 AND owner_id = $2`,
		namespace, ownerID,
	); err != nil {
		return fmt.Errorf("failed to delete existing vectors: %w", err)
	}

	for _, rec := range rows {
		metaJSON, err := json.Marshal(rec.metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO embedding_records (id, namespace, owner_id, embedding, metadata)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.id, namespace, rec.ownerID, pgvector.NewVector(rec.vector), metaJSON,
		); err != nil {
			return fmt.Errorf("failed to insert vector %s: %w", rec.id, err)
		}
	}

	return tx.Commit(ctx)
}

// Search runs a cosine kNN query with filters pushed into the WHERE clause.
func (p *PostgresIndex) Search(ctx context.Context, namespace string, queryVector []float32, topK int, filters []Filter) ([]Match, error) {
	if topK <= 0 {
		return nil, nil
	}

	where := []string{"namespace = $2"}
	args := []any{pgvector.NewVector(queryVector), namespace}

	if namespace == NamespaceJobs && !referencesSkillFlag(filters) {
		where = append(where, fmt.Sprintf("NOT COALESCE((metadata->>'%s')::boolean, false)", MetaIsSkillVector))
	}

	for _, f := range filters {
		clause, clauseArgs, err := f.sqlClause(len(args) + 1)
		if err != nil {
			return nil, &IndexError{Op: "search", Cause: err}
		}
		where = append(where, clause)
		args = append(args, clauseArgs...)
	}

	query := fmt.Sprintf(
		`SELECT id, metadata, 1 - (embedding <=> $1) AS score
		 FROM embedding_records
		 WHERE %s
		 ORDER BY embedding <=> $1, id
		 LIMIT %d`,
		strings.Join(where, " AND "), topK,
	)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &IndexError{Op: "search", Cause: err}
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m        Match
			metaJSON []byte
		)
		if err := rows.Scan(&m.ID, &metaJSON, &m.Score); err != nil {
			return nil, &IndexError{Op: "search", Cause: err}
		}
		if err := json.Unmarshal(metaJSON, &m.Metadata); err != nil {
			return nil, &IndexError{Op: "search", Cause: err}
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &IndexError{Op: "search", Cause: err}
	}
	return matches, nil
}

// DeleteJob removes all vectors for a job.
func (p *PostgresIndex) DeleteJob(ctx context.Context, jobID string) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM embedding_records WHERE namespace = $1 AND owner_id = $2`,
		NamespaceJobs, jobID,
	); err != nil {
		return &IndexError{Op: "delete_job", Cause: err}
	}
	return nil
}

// DeleteUserSkills removes all vectors for (userID, resumeID).
func (p *PostgresIndex) DeleteUserSkills(ctx context.Context, userID, resumeID string) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM embedding_records WHERE namespace = $1 AND owner_id = $2`,
		NamespaceUsers, userOwner(userID, resumeID),
	); err != nil {
		return &IndexError{Op: "delete_user_skills", Cause: err}
	}
	return nil
}

// Close closes the connection pool.
func (p *PostgresIndex) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

var identPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// sqlClause renders the filter as SQL against the jsonb metadata column.
// argIndex is the placeholder number for the first bound argument. Field
// names are interpolated into the query, so they are restricted to a safe
// identifier character set.
func (f Filter) sqlClause(argIndex int) (string, []any, error) {
	if !identPattern.MatchString(f.field) {
		return "", nil, fmt.Errorf("invalid filter field %q", f.field)
	}

	switch f.kind {
	case filterEq:
		if n, ok := toFloat(f.value); ok {
			return fmt.Sprintf("(metadata->>'%s')::numeric = $%d", f.field, argIndex), []any{n}, nil
		}
		if b, ok := f.value.(bool); ok {
			return fmt.Sprintf("(metadata->>'%s')::boolean = $%d", f.field, argIndex), []any{b}, nil
		}
		return fmt.Sprintf("metadata->>'%s' = $%d", f.field, argIndex), []any{fmt.Sprintf("%v", f.value)}, nil
	case filterMin:
		return fmt.Sprintf("(metadata->>'%s')::numeric >= $%d", f.field, argIndex), []any{f.bound}, nil
	case filterMax:
		return fmt.Sprintf("(metadata->>'%s')::numeric <= $%d", f.field, argIndex), []any{f.bound}, nil
	case filterIn:
		printed := make([]string, len(f.values))
		for i, v := range f.values {
			printed[i] = fmt.Sprintf("%v", v)
		}
		return fmt.Sprintf("metadata->>'%s' = ANY($%d)", f.field, argIndex), []any{printed}, nil
	}
	return "", nil, fmt.Errorf("unknown filter kind %d", f.kind)
}
