package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const llmRequestsTable = "llm_requests"

// LedgerRepo implements EventRepo and the ledger read queries.
type LedgerRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ EventRepo = (*LedgerRepo)(nil)

func (r *LedgerRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *LedgerRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *LedgerRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := r.builder().
		Insert(llmRequestsTable).
		Columns("created_at", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "success", "error_message").
		Values(r.clock().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// UsageByModel returns token totals grouped by model, most calls first.
func (r *LedgerRepo) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	t := entsql.Table(llmRequestsTable)
	query, args := r.builder().
		Select(
			t.C("model"),
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum(t.C("input_tokens")), "input_tokens"),
			entsql.As(entsql.Sum(t.C("output_tokens")), "output_tokens"),
		).
		From(t).
		GroupBy(t.C("model")).
		OrderBy(entsql.Desc("calls"), t.C("model")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage by model: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UsageByPurpose returns token totals, average latency and failure counts
// grouped by purpose.
func (r *LedgerRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	t := entsql.Table(llmRequestsTable)
	query, args := r.builder().
		Select(
			t.C("purpose"),
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum(t.C("input_tokens")), "input_tokens"),
			entsql.As(entsql.Sum(t.C("output_tokens")), "output_tokens"),
			entsql.As("CAST(AVG("+t.C("latency_ms")+") AS INTEGER)", "avg_latency_ms"),
			entsql.As("SUM(CASE WHEN "+t.C("success")+" = 0 THEN 1 ELSE 0 END)", "failures"),
		).
		From(t).
		GroupBy(t.C("purpose")).
		OrderBy(t.C("purpose")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs, &u.Failures); err != nil {
			return nil, fmt.Errorf("scan usage by purpose: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Recent returns up to limit ledger rows, newest first. A limit of zero or
// less returns every row.
func (r *LedgerRepo) Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error) {
	t := entsql.Table(llmRequestsTable)
	sel := r.builder().
		Select(
			t.C("id"), t.C("created_at"), t.C("provider"), t.C("model"), t.C("purpose"),
			t.C("input_tokens"), t.C("output_tokens"), t.C("latency_ms"),
			t.C("success"), t.C("error_message"),
		).
		From(t).
		OrderBy(entsql.Desc(t.C("id")))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var (
			rec       LLMRequestRecord
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs,
			&rec.Success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(createdAt).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
