package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodesAreUnique(t *testing.T) {
	errs := []Error{
		NewValidationError("v"),
		NewUnauthorizedError("u", nil),
		NewForbiddenError("f"),
		NewNotFoundError("n"),
		NewCannotDeleteDependencyError("categoria", 1, "riscos"),
		NewDuplicateFieldError("name", "x"),
		NewInvalidRelationshipError("r"),
	}

	seen := map[Code]bool{}
	for _, e := range errs {
		if seen[e.Code()] {
			t.Fatalf("code %s used by more than one type", e.Code())
		}
		seen[e.Code()] = true
	}
}

func TestCannotDeleteDependencyError(t *testing.T) {
	err := NewCannotDeleteDependencyError("categoria", 3, "riscos")

	if got, want := err.Error(), "Não é possível excluir categoria pois existem 3 riscos vinculados"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	f := err.Fields()
	if len(f) != 3 || f["entity"] != "categoria" || f["dependentCount"] != int64(3) || f["dependentEntity"] != "riscos" {
		t.Fatalf("unexpected fields: %+v", f)
	}
}

func TestDuplicateFieldError(t *testing.T) {
	err := NewDuplicateFieldError("username", "ana")

	if err.Code() != CodeDuplicateField {
		t.Fatalf("unexpected code %s", err.Code())
	}
	f := err.Fields()
	if len(f) != 2 || f["field"] != "username" || f["value"] != "ana" {
		t.Fatalf("unexpected fields: %+v", f)
	}
}

func TestDuplicateFieldError_MessageKeepsRawValue(t *testing.T) {
	err := NewDuplicateFieldError("name", `Ruído "contínuo"`)

	if got, want := err.Error(), `Já existe um registro com name = "Ruído "contínuo""`; got != want {
		t.Fatalf("message = %s, want %s", got, want)
	}
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("delete: %w", NewNotFoundError("Categoria de risco não encontrada"))

	de, ok := AsError(wrapped)
	if !ok || de.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND through wrapping, got %v %v", de, ok)
	}

	if _, ok := AsError(errors.New("plain")); ok {
		t.Fatalf("plain errors are not application errors")
	}
	if _, ok := AsError(nil); ok {
		t.Fatalf("nil is not an application error")
	}
}

func TestUnauthorizedErrorKeepsCause(t *testing.T) {
	err := NewUnauthorizedError("Token inválido ou expirado", ErrTokenExpired)

	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("cause not reachable via errors.Is")
	}
	if err.Message != "Token inválido ou expirado" {
		t.Fatalf("unexpected message %q", err.Message)
	}
}
