package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/openapi"
)

const apiDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/users": {
      "post": {
        "operationId": "createUser",
        "summary": "Create account",
        "description": "Sign up for the service.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {
                  "email": {
                    "type": "string",
                    "title": "Email",
                    "pattern": "^[^@\\s]+@[^@\\s]+$"
                  },
                  "password": {
                    "type": "string",
                    "format": "password",
                    "minLength": 8
                  },
                  "displayName": {"type": "string"},
                  "subscribe": {"type": "boolean"},
                  "age": {"type": "integer"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestFromDocumentBuildsBlueprint(t *testing.T) {
	bp, err := openapi.FromDocument(context.Background(), []byte(apiDocument), "createUser")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}

	// Intro block carries the operation summary and description.
	if bp.Blocks[0].Kind != blueprint.BlockKindBlock {
		t.Fatalf("first block kind = %q", bp.Blocks[0].Kind)
	}
	if got, want := bp.Blocks[0].Elements[0].Text, "Create account"; got != want {
		t.Errorf("heading = %q, want %q", got, want)
	}

	var names []string
	for _, field := range bp.Fields() {
		names = append(names, field.Name)
	}
	// Properties map alphabetically; the integer property is dropped.
	want := []string{"displayName", "email", "password", "subscribe"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDocumentMapsKindsAndRules(t *testing.T) {
	bp, err := openapi.FromDocument(context.Background(), []byte(apiDocument), "createUser")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}

	email, _ := bp.Field("email")
	if email.Kind != blueprint.ElementKindInput {
		t.Errorf("email kind = %q", email.Kind)
	}
	if !email.Required {
		t.Error("email lost its required flag")
	}
	if email.Label != "Email" {
		t.Errorf("email label = %q, want schema title", email.Label)
	}
	wantRules := []blueprint.Rule{
		{Type: blueprint.RuleTypePattern, Regexp: `^[^@\s]+@[^@\s]+$`},
	}
	if diff := cmp.Diff(wantRules, email.Validator, cmpopts.IgnoreUnexported(blueprint.Rule{})); diff != "" {
		t.Errorf("email rules mismatch (-want +got):\n%s", diff)
	}
	if email.Validator[0].Pattern() == nil {
		t.Error("pattern rule was not compiled")
	}

	password, _ := bp.Field("password")
	if password.Kind != blueprint.ElementKindPassword {
		t.Errorf("password kind = %q, want password for format password", password.Kind)
	}
	wantRules = []blueprint.Rule{
		{Type: blueprint.RuleTypeLength, Operator: blueprint.OperatorGTE, Value: 8},
	}
	if diff := cmp.Diff(wantRules, password.Validator, cmpopts.IgnoreUnexported(blueprint.Rule{})); diff != "" {
		t.Errorf("password rules mismatch (-want +got):\n%s", diff)
	}

	subscribe, _ := bp.Field("subscribe")
	if subscribe.Kind != blueprint.ElementKindCheckbox {
		t.Errorf("subscribe kind = %q", subscribe.Kind)
	}
	if subscribe.Label != "Subscribe" {
		t.Errorf("subscribe label = %q, want derived title case", subscribe.Label)
	}

	displayName, _ := bp.Field("displayName")
	if displayName.Label != "Display Name" {
		t.Errorf("displayName label = %q, want split camel case", displayName.Label)
	}
}

func TestFromDocumentAppendsSubmitRow(t *testing.T) {
	bp, err := openapi.FromDocument(context.Background(), []byte(apiDocument), "createUser")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}

	last := bp.Blocks[len(bp.Blocks)-1]
	if last.Kind != blueprint.BlockKindRow {
		t.Fatalf("last block kind = %q", last.Kind)
	}
	submit := last.Columns[0].Elements[0]
	if submit.Kind != blueprint.ElementKindSubmit {
		t.Errorf("trailing element kind = %q", submit.Kind)
	}
	if submit.Label != "Create account" {
		t.Errorf("submit label = %q, want operation summary", submit.Label)
	}
}

func TestFromDocumentErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := openapi.FromDocument(ctx, nil, "createUser"); err == nil {
		t.Error("expected error for empty payload")
	}
	if _, err := openapi.FromDocument(ctx, []byte(apiDocument), ""); err == nil {
		t.Error("expected error for missing operation id")
	}
	_, err := openapi.FromDocument(ctx, []byte(apiDocument), "deleteUser")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("unknown operation err = %v", err)
	}
}
