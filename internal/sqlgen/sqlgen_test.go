package sqlgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/askdb/askdb/internal/dialect"
)

type fakeClient struct {
	prompts  []string
	response string
	err      error
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerateEmbedsSchemaRulesAndQuestion(t *testing.T) {
	client := &fakeClient{response: "SELECT e.first_name FROM employees e"}
	g := NewGenerator(client, dialect.Postgres, nil)

	got := g.Generate(context.Background(), "List all employees", "EMPLOYEES (ID NUMBER)")
	if got != "SELECT e.first_name FROM employees e" {
		t.Fatalf("Generate() = %q", got)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("model calls = %d, want 1", len(client.prompts))
	}
	prompt := client.prompts[0]
	for _, fragment := range []string{
		"EMPLOYEES (ID NUMBER)",
		"IMPORTANT TABLES:",
		"- EMPLOYEES (EMPLOYEE_ID, FIRST_NAME, LAST_NAME",
		"Use PostgreSQL SQL syntax only.",
		"List all employees",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestGenerateReturnsEmptyOnModelError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	g := NewGenerator(client, dialect.Postgres, nil)

	if got := g.Generate(context.Background(), "q", "s"); got != "" {
		t.Fatalf("Generate() = %q, want empty", got)
	}
}

func TestRepairEmbedsFailedSQLAndError(t *testing.T) {
	client := &fakeClient{response: "SELECT e.salary FROM employees e"}
	g := NewGenerator(client, dialect.Postgres, nil)

	got := g.Repair(context.Background(), "SELECT e.wage FROM employees e", `column e.wage does not exist`)
	if got != "SELECT e.salary FROM employees e" {
		t.Fatalf("Repair() = %q", got)
	}
	prompt := client.prompts[0]
	if !strings.Contains(prompt, "SELECT e.wage FROM employees e") {
		t.Fatalf("repair prompt missing failed SQL:\n%s", prompt)
	}
	if !strings.Contains(prompt, "column e.wage does not exist") {
		t.Fatalf("repair prompt missing database error:\n%s", prompt)
	}
}

func TestCleanStatement(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"  SELECT 1;  ", "SELECT 1"},
		{"SELECT 1;;", "SELECT 1"},
		{"```sql\nSELECT 1;\n```", "SELECT 1"},
		{"```\nSELECT 1\n```", "SELECT 1"},
		{"`SELECT 1`", "SELECT 1"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanStatement(tc.raw); got != tc.want {
			t.Fatalf("CleanStatement(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
