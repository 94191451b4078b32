package repository

import (
	"strings"
	"testing"
)

func TestBuildSearchLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildSearchLikeConditionByDialect("sqlite", []string{"name", "sku", ""})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "name LIKE ? OR sku LIKE ?" {
		t.Fatalf("condition mismatch, got %s", condition)
	}
}

func TestBuildSearchLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildSearchLikeConditionByDialect("postgres", []string{"name", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "name ILIKE ?") {
		t.Fatalf("condition should use ILIKE on postgres, got %s", condition)
	}
}

func TestLikeOperatorByDialect(t *testing.T) {
	if op := likeOperatorByDialect("postgresql"); op != "ILIKE" {
		t.Fatalf("postgresql operator want ILIKE got %s", op)
	}
	if op := likeOperatorByDialect("sqlite"); op != "LIKE" {
		t.Fatalf("sqlite operator want LIKE got %s", op)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
