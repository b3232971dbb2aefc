package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

func printed(t *testing.T, a *model.GeneratedArtifact) string {
	t.Helper()
	out, err := New().Print(a)
	require.NoError(t, err)
	return string(out)
}

func TestPrintLegacyClass(t *testing.T) {
	a := &model.GeneratedArtifact{
		Namespace: `Acme\Types`,
		TypeName:  "Order",
		Comment:   "Generated file.",
		Traits:    []string{"BaseType"},
	}
	a.AddProperty(model.Property{Name: "id", Binding: model.PropertyBinding{DocType: "int"}})
	a.AddProperty(model.Property{
		Name:    "payload",
		Comment: "Contains base64Binary string",
		Binding: model.PropertyBinding{DocType: "string|null"},
	})

	want := `<?php

/** Generated file. */

declare(strict_types=1);

namespace Acme\Types;

class Order
{
    use BaseType;

    /** @var int */
    public $id;

    /**
     * Contains base64Binary string
     * @var string|null
     */
    public $payload;
}
`
	if diff := cmp.Diff(want, printed(t, a)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintModernClass(t *testing.T) {
	a := &model.GeneratedArtifact{Namespace: `\Acme\Types\`, TypeName: "Order"}
	a.AddProperty(model.Property{Name: "id", Binding: model.PropertyBinding{NativeType: "int"}})
	a.AddProperty(model.Property{Name: "createdAt", Binding: model.PropertyBinding{NativeType: "?DateTime"}})
	a.AddProperty(model.Property{Name: "customer", Binding: model.PropertyBinding{NativeType: `Acme\Types\Customer`}})
	a.AddProperty(model.Property{Name: "other", Binding: model.PropertyBinding{NativeType: `Vendor\Money`}})
	a.AddProperty(model.Property{Name: "lines", Binding: model.PropertyBinding{StorageType: "array", DocType: "OrderLine[]"}})

	want := `<?php

declare(strict_types=1);

namespace Acme\Types;

class Order
{
    public int $id;

    public ?\DateTime $createdAt;

    public Customer $customer;

    public \Vendor\Money $other;

    /** @var OrderLine[] */
    public array $lines;
}
`
	if diff := cmp.Diff(want, printed(t, a)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintTrait(t *testing.T) {
	a := &model.GeneratedArtifact{
		Namespace: `Acme\Types`,
		TypeName:  "BaseType",
		Kind:      model.KindTrait,
		Uses:      []string{"ReflectionClass", "DateTime", "DateTime"},
	}
	a.AddMethod(model.PatternMethod{
		Name:       "fromArray",
		Visibility: model.Public,
		Static:     true,
		ReturnType: "self",
		Parameters: []model.Parameter{{Name: "data", Type: "array"}},
		DocComment: "Creates it.",
		Body:       "$x = 1;\n\nreturn $x;\n",
	})
	a.AddMethod(model.PatternMethod{
		Name:           "decode",
		Visibility:     model.Private,
		ReturnType:     "string",
		ReturnNullable: true,
		Parameters: []model.Parameter{
			{Name: "v", Type: "string", Nullable: true, HasDefault: true, Default: "null"},
			{Name: "k", Type: "int|string", Nullable: true, HasDefault: true, Default: "0"},
		},
		Body: "return $v;\n",
	})

	want := `<?php

declare(strict_types=1);

namespace Acme\Types;

use DateTime;
use ReflectionClass;

trait BaseType
{
    /** Creates it. */
    public static function fromArray(array $data): self
    {
        $x = 1;

        return $x;
    }

    private function decode(?string $v = null, int|string|null $k = 0): ?string
    {
        return $v;
    }
}
`
	if diff := cmp.Diff(want, printed(t, a)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintIsDeterministic(t *testing.T) {
	a := &model.GeneratedArtifact{Namespace: "Acme", TypeName: "T", Uses: []string{"B", "A"}}
	a.AddProperty(model.Property{Name: "x", Binding: model.PropertyBinding{DocType: "int"}})

	first := printed(t, a)
	second := printed(t, a)
	assert.Equal(t, first, second)
}

func TestPrintRejectsInvalidMembers(t *testing.T) {
	a := &model.GeneratedArtifact{TypeName: "T", Members: []model.Member{{}}}
	_, err := New().Print(a)
	assert.Error(t, err)

	b := &model.GeneratedArtifact{TypeName: "T"}
	b.AddMethod(model.PatternMethod{Name: "f"})
	_, err = New().Print(b)
	assert.Error(t, err)

	_, err = New().Print(&model.GeneratedArtifact{})
	assert.Error(t, err)
}
