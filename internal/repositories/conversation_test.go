package repositories

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunRepository builds SQL against the postgres dialect without a
// server and records every statement it would have executed.
func newDryRunRepository(t *testing.T) (ConversationRepository, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost port=5432 user=postgres dbname=ats_platform sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open dry run db: %v", err)
	}

	var statements []string
	capture := func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	}
	if err := db.Callback().Query().After("gorm:query").Register("test:capture_query", capture); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("test:capture_delete", capture); err != nil {
		t.Fatalf("register delete callback: %v", err)
	}

	return NewConversationRepository(db), &statements
}

func lastStatement(t *testing.T, statements *[]string) string {
	t.Helper()
	if len(*statements) == 0 {
		t.Fatal("expected a statement to be built")
	}
	return (*statements)[len(*statements)-1]
}

func TestTrimSessionKeepsNewestTurns(t *testing.T) {
	repo, statements := newDryRunRepository(t)

	if err := repo.TrimSession(context.Background(), "user-42", 3); err != nil {
		t.Fatalf("trim session: %v", err)
	}

	sql := lastStatement(t, statements)
	for _, want := range []string{
		`DELETE FROM "conversation_turns"`,
		"session_id = $1",
		"id NOT IN (SELECT",
		"ORDER BY created_at DESC",
		"LIMIT",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected %q in %s", want, sql)
		}
	}
	if strings.Index(sql, "NOT IN") > strings.Index(sql, "LIMIT") {
		t.Fatalf("expected LIMIT inside the subquery, got %s", sql)
	}
}

func TestFindBySessionOrdersOldestFirst(t *testing.T) {
	repo, statements := newDryRunRepository(t)

	if _, err := repo.FindBySession(context.Background(), "user-42"); err != nil {
		t.Fatalf("find by session: %v", err)
	}

	sql := lastStatement(t, statements)
	if !strings.Contains(sql, "session_id = $1") || !strings.Contains(sql, "ORDER BY created_at ASC") {
		t.Fatalf("unexpected query %s", sql)
	}
}

func TestDeleteStatements(t *testing.T) {
	repo, statements := newDryRunRepository(t)

	if err := repo.DeleteBySession(context.Background(), "user-42"); err != nil {
		t.Fatalf("delete by session: %v", err)
	}
	if sql := lastStatement(t, statements); !strings.Contains(sql, "WHERE session_id = $1") {
		t.Fatalf("expected session scoped delete, got %s", sql)
	}

	if err := repo.DeleteAll(context.Background()); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if sql := lastStatement(t, statements); strings.Contains(sql, "WHERE") {
		t.Fatalf("expected unscoped delete, got %s", sql)
	}
}
