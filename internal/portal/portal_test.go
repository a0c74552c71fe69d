package portal

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSchema(t *testing.T) *Context {
	t.Helper()
	c := NewContext()
	c.MustDefineParameter(Parameter{
		Name:        "node_type",
		Description: "Compute node type",
		Default:     "d740",
		LegalValues: []LegalValue{
			{Value: "d430", Label: "Emulab, d430"},
			{Value: "d740", Label: "Emulab, d740"},
		},
	})
	c.MustDefineParameter(Parameter{
		Name:        "commit_hash",
		Description: "Commit hash",
		Type:        TypeString,
		Advanced:    true,
		Validate: func(v string) error {
			if strings.Contains(v, " ") {
				return fmt.Errorf("no spaces allowed")
			}
			return nil
		},
	})
	return c
}

func TestDefineParameter_InfersEnumType(t *testing.T) {
	c := testSchema(t)

	p, ok := c.Lookup("node_type")
	if !ok {
		t.Fatal("expected node_type to be defined")
	}
	if p.Type != TypeEnum {
		t.Errorf("Type = %q, want %q", p.Type, TypeEnum)
	}

	p, _ = c.Lookup("commit_hash")
	if p.Type != TypeString {
		t.Errorf("Type = %q, want %q", p.Type, TypeString)
	}
}

func TestDefineParameter_Duplicate(t *testing.T) {
	c := testSchema(t)

	err := c.DefineParameter(Parameter{Name: "Node-Type"})
	if !errors.Is(err, ErrDuplicateParameter) {
		t.Fatalf("expected ErrDuplicateParameter, got %v", err)
	}
}

func TestDefineParameter_IllegalDefault(t *testing.T) {
	c := NewContext()

	err := c.DefineParameter(Parameter{
		Name:        "bench",
		Default:     "bench_z",
		LegalValues: []LegalValue{{Value: "bench_a"}},
	})
	if !errors.Is(err, ErrIllegalValue) {
		t.Fatalf("expected ErrIllegalValue, got %v", err)
	}
}

func TestDefineParameter_EnumWithoutValues(t *testing.T) {
	c := NewContext()

	if err := c.DefineParameter(Parameter{Name: "x", Type: TypeEnum}); err == nil {
		t.Fatal("expected error for enum without legal values")
	}
}

func TestLookup_NameForms(t *testing.T) {
	c := testSchema(t)

	for _, name := range []string{"node_type", "node-type", "NODE_TYPE", "  Node-Type "} {
		if _, ok := c.Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
}

func TestBind_DefaultsOnly(t *testing.T) {
	c := testSchema(t)

	b, err := c.Bind()
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	want := map[string]string{"node_type": "d740", "commit_hash": ""}
	if diff := cmp.Diff(want, b.Map()); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
	if got := b.Origin("node_type"); got != OriginDefault {
		t.Errorf("Origin = %q, want %q", got, OriginDefault)
	}
}

func TestBind_LayeredSources(t *testing.T) {
	c := testSchema(t)

	b, err := c.Bind(
		Values("config", map[string]string{"node_type": "d430"}),
		Values("flags", map[string]string{"node-type": "D740", "commit_hash": " abc123 "}),
		Values("env", map[string]string{"node_type": ""}),
	)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	if got := b.Get("node_type"); got != "d740" {
		t.Errorf("node_type = %q, want %q", got, "d740")
	}
	if got := b.Origin("node_type"); got != "flags" {
		t.Errorf("node_type origin = %q, want %q", got, "flags")
	}
	if got := b.Get("commit_hash"); got != "abc123" {
		t.Errorf("commit_hash = %q, want %q", got, "abc123")
	}
}

func TestBind_AnswersResetToDefault(t *testing.T) {
	c := testSchema(t)

	b, err := c.Bind(
		Values("flags", map[string]string{"node_type": "d430", "commit_hash": "abc123"}),
		Answers("wizard", map[string]string{"node_type": "d430", "commit_hash": " "}),
	)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	if got := b.Get("commit_hash"); got != "" {
		t.Errorf("commit_hash = %q, want the empty default", got)
	}
	if got := b.Origin("commit_hash"); got != OriginDefault {
		t.Errorf("commit_hash origin = %q, want %q", got, OriginDefault)
	}
	if got := b.Or("commit_hash", "fallback"); got != "fallback" {
		t.Errorf("Or = %q, want fallback", got)
	}
	if got := b.Origin("node_type"); got != "wizard" {
		t.Errorf("node_type origin = %q, want wizard", got)
	}
}

func TestBind_AnswersUnknownEmptyName(t *testing.T) {
	c := testSchema(t)
	_, err := c.Bind(Answers("wizard", map[string]string{"colour": ""}))
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestBind_IllegalEnumValue(t *testing.T) {
	c := testSchema(t)

	_, err := c.Bind(Values("flags", map[string]string{"node_type": "m510"}))
	if !errors.Is(err, ErrIllegalValue) {
		t.Fatalf("expected ErrIllegalValue, got %v", err)
	}
	for _, want := range []string{"flags", "m510", "node_type", "d430, d740"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestBind_ValidatorFailure(t *testing.T) {
	c := testSchema(t)

	_, err := c.Bind(Values("file", map[string]string{"commit_hash": "a b"}))
	if !errors.Is(err, ErrIllegalValue) {
		t.Fatalf("expected ErrIllegalValue, got %v", err)
	}
	if !strings.Contains(err.Error(), "no spaces allowed") {
		t.Errorf("expected validator message in error, got %q", err.Error())
	}
}

func TestBind_UnknownParameter(t *testing.T) {
	c := testSchema(t)

	_, err := c.Bind(Values("file", map[string]string{"colour": "blue"}))
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) Values() (map[string]string, error) {
	return nil, errors.New("boom")
}

func TestBind_SourceError(t *testing.T) {
	c := testSchema(t)

	_, err := c.Bind(failingSource{})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected error naming the source, got %v", err)
	}
}

func TestBindings_Or(t *testing.T) {
	c := testSchema(t)

	b, err := c.Bind()
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if got := b.Or("commit_hash", "v1.5.0"); got != "v1.5.0" {
		t.Errorf("Or without override = %q, want default", got)
	}

	b, err = c.Bind(Values("flags", map[string]string{"commit_hash": "deadbeef"}))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if got := b.Or("commit_hash", "v1.5.0"); got != "deadbeef" {
		t.Errorf("Or with override = %q, want %q", got, "deadbeef")
	}
}

func TestParameter_Label(t *testing.T) {
	c := testSchema(t)
	p, _ := c.Lookup("node_type")

	if got := p.Label("d430"); got != "Emulab, d430" {
		t.Errorf("Label = %q", got)
	}
	if got := p.Label("other"); got != "other" {
		t.Errorf("Label fallback = %q", got)
	}
}
