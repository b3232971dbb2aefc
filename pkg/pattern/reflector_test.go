package pattern

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

func reflectSource(t *testing.T, src, class string, opts ...ReflectorOption) (*model.Pattern, error) {
	t.Helper()
	fsys := fstest.MapFS{"Pattern.php": &fstest.MapFile{Data: []byte(src)}}
	return FromFS(fsys, "Pattern.php", class, opts...).Reflect()
}

func TestDefaultPattern(t *testing.T) {
	p, err := Default().Reflect()
	require.NoError(t, err)

	assert.Equal(t, DefaultClass, p.Name)
	assert.Equal(t, []string{"DateTime", "ReflectionClass"}, p.Uses)

	names := make([]string, 0, len(p.Methods))
	for _, m := range p.Methods {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"fromArray", "toArray", "getTypeName", "exportValue", "decodeBase64"}, names)

	fromArray := p.Methods[0]
	wantFromArray := model.PatternMethod{
		Name:       "fromArray",
		Visibility: model.Public,
		Static:     true,
		ReturnType: "self",
		Parameters: []model.Parameter{{Name: "data", Type: "array"}},
		DocComment: "Creates an instance and assigns every known property from $data.",
		Body: `$instance = new static();
foreach ($data as $name => $value) {
    if (property_exists($instance, $name)) {
        $instance->{$name} = $value;
    }
}

return $instance;
`,
	}
	if diff := cmp.Diff(wantFromArray, fromArray); diff != "" {
		t.Errorf("fromArray mismatch (-want +got):\n%s", diff)
	}

	toArray := p.Methods[1]
	assert.Equal(t, model.Public, toArray.Visibility)
	assert.False(t, toArray.Static)
	assert.Equal(t, "array", toArray.ReturnType)
	assert.Equal(t, []model.Parameter{{Name: "skipNull", Type: "bool", HasDefault: true, Default: "false"}}, toArray.Parameters)

	getTypeName := p.Methods[2]
	assert.Empty(t, getTypeName.DocComment)
	assert.Equal(t, "return (new ReflectionClass($this))->getShortName();\n", getTypeName.Body)

	exportValue := p.Methods[3]
	assert.Equal(t, model.Protected, exportValue.Visibility)
	assert.Empty(t, exportValue.ReturnType)
	assert.Equal(t, "@param mixed $value\n@return mixed", exportValue.DocComment)
	assert.Equal(t, []model.Parameter{
		{Name: "value"},
		{Name: "dateFormat", Type: "string", HasDefault: true, Default: "DateTime::ATOM"},
	}, exportValue.Parameters)
	assert.Contains(t, exportValue.Body, "return array_map(function ($item) use ($dateFormat) {\n")

	decode := p.Methods[4]
	assert.Equal(t, model.Private, decode.Visibility)
	assert.True(t, decode.Static)
	assert.Equal(t, "string", decode.ReturnType)
	assert.True(t, decode.ReturnNullable)
	assert.Equal(t, []model.Parameter{{Name: "value", Type: "string", Nullable: true}}, decode.Parameters)
}

func TestReflectPreservesParameterOrderAndDefaults(t *testing.T) {
	src := `<?php
class P
{
    public function pair(string $first, int $second = 3): ?int
    {
        return $second;
    }

    protected function untyped($a, $b = 'x,y', ?array $c = null)
    {
        return [$a, $b, $c];
    }
}
`
	p, err := reflectSource(t, src, "P")
	require.NoError(t, err)
	require.Len(t, p.Methods, 2)

	pair := p.Methods[0]
	assert.Equal(t, []model.Parameter{
		{Name: "first", Type: "string"},
		{Name: "second", Type: "int", HasDefault: true, Default: "3"},
	}, pair.Parameters)
	assert.Equal(t, "int", pair.ReturnType)
	assert.True(t, pair.ReturnNullable)

	assert.Equal(t, []model.Parameter{
		{Name: "a"},
		{Name: "b", HasDefault: true, Default: "'x,y'"},
		{Name: "c", Type: "array", Nullable: true, HasDefault: true, Default: "null"},
	}, p.Methods[1].Parameters)
}

func TestReflectUnionNullAndImplicitNull(t *testing.T) {
	src := `<?php
class P
{
    public function find(string $key = null): string|null
    {
        return $key;
    }
}
`
	p, err := reflectSource(t, src, "P")
	require.NoError(t, err)
	m := p.Methods[0]
	assert.Equal(t, "string", m.ReturnType)
	assert.True(t, m.ReturnNullable)
	assert.True(t, m.Parameters[0].Nullable)
}

func TestReflectSkipsOtherClassesAndProperties(t *testing.T) {
	src := `<?php
namespace Demo;

use Foo\Bar, Baz;

class Other
{
    public function ignored()
    {
        return 1;
    }
}

class P
{
    /** @var int */
    private $count = 0;

    const NAME = 'p;{';

    // public function commented()
    public function only(): int
    {
        // }
        $s = "}{";
        return $this->count;
    }
}
`
	p, err := reflectSource(t, src, "P")
	require.NoError(t, err)
	assert.Equal(t, []string{`Foo\Bar`, "Baz"}, p.Uses)
	require.Len(t, p.Methods, 1)
	assert.Equal(t, "only", p.Methods[0].Name)
	assert.Empty(t, p.Methods[0].DocComment)
	assert.Equal(t, "// }\n$s = \"}{\";\nreturn $this->count;\n", p.Methods[0].Body)
}

func TestReflectBracedNamespace(t *testing.T) {
	src := `<?php
namespace Other {
    use Ignored\Thing;

    class Q
    {
        public function g(): int
        {
            return 0;
        }
    }
}

namespace Demo {
    use Foo\Bar;

    class P
    {
        public function f(): int
        {
            return 1;
        }
    }
}
`
	p, err := reflectSource(t, src, "P")
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo\\Bar"}, p.Uses)
	require.Len(t, p.Methods, 1)
	assert.Equal(t, "f", p.Methods[0].Name)
	assert.Equal(t, "int", p.Methods[0].ReturnType)
	assert.Equal(t, "return 1;\n", p.Methods[0].Body)
}

func TestReflectGroupUse(t *testing.T) {
	src := `<?php
namespace Demo {
    use Foo\{Bar, Baz};
    use function strlen;

    trait Shared
    {
        public function f(): int
        {
            return 1;
        }
    }
}
`
	p, err := reflectSource(t, src, "Shared")
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo\\Bar", "Foo\\Baz"}, p.Uses)
	require.Len(t, p.Methods, 1)
	assert.Equal(t, "return 1;\n", p.Methods[0].Body)
}

func TestReflectHeredocBody(t *testing.T) {
	src := `<?php
class P
{
    public function f(): string
    {
        $s = <<<TXT
        it's {
        TXT;
        return $s . '}';
    }

    public function g(): int
    {
        return 2;
    }
}
`
	p, err := reflectSource(t, src, "P")
	require.NoError(t, err)
	require.Len(t, p.Methods, 2)
	assert.Equal(t, "$s = <<<TXT\nit's {\nTXT;\nreturn $s . '}';\n", p.Methods[0].Body)
	assert.Equal(t, "g", p.Methods[1].Name)
	assert.Equal(t, "return 2;\n", p.Methods[1].Body)
}

func TestReflectErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"class missing", "<?php\nclass Q\n{\n}\n"},
		{"no visibility", "<?php\nclass P\n{\n    function f()\n    {\n        return 1;\n    }\n}\n"},
		{"abstract", "<?php\nabstract class P\n{\n    abstract public function f();\n}\n"},
		{"one line body", "<?php\nclass P\n{\n    public function f() { return 1; }\n}\n"},
		{"unclosed", "<?php\nclass P\n{\n    public function f()\n    {\n"},
		{"variadic", "<?php\nclass P\n{\n    public function f(int ...$xs)\n    {\n        return $xs;\n    }\n}\n"},
		{"by reference", "<?php\nclass P\n{\n    public function f(array &$xs)\n    {\n        return $xs;\n    }\n}\n"},
		{"syntax error", "<?php\nclass P\n{\n    public function f(\n    {\n    }\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reflectSource(t, tt.src, "P")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrReflection), err.Error())
		})
	}
}

func TestReflectMissingFile(t *testing.T) {
	_, err := FromFS(fstest.MapFS{}, "Missing.php", "P").Reflect()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrReflection))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestTransplantRoundTrip(t *testing.T) {
	body := "$a = 1;\n\nif ($a) {\n    return $a;\n}\n\nreturn 0;\n"
	for _, boundary := range []string{"", "    ", "        "} {
		var lines []string
		lines = append(lines, boundary+"public function f()", boundary+"{")
		for _, l := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
			if l == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, boundary+"    "+l)
		}
		lines = append(lines, boundary+"}")

		width := len(boundary) + DefaultIndentWidth
		got := Transplant(lines, 2, len(lines), width)
		assert.Equal(t, body, got, "boundary indent %d", len(boundary))
	}
}

func TestTransplantOnlyStripsWhitespace(t *testing.T) {
	lines := []string{"{", "  short();", "\t\ttabbed();", "      ", "}"}
	got := Transplant(lines, 1, 5, 4)
	assert.Equal(t, "short();\n\ttabbed();\n\n", got)
}

func TestIndentOptions(t *testing.T) {
	src := "<?php\nclass P\n{\n  public function f()\n  {\n        return 1;\n  }\n}\n"

	p, err := reflectSource(t, src, "P")
	require.NoError(t, err)
	assert.Equal(t, "  return 1;\n", p.Methods[0].Body)

	p, err = reflectSource(t, src, "P", WithIndentWidth(2))
	require.NoError(t, err)
	assert.Equal(t, "    return 1;\n", p.Methods[0].Body)

	p, err = reflectSource(t, src, "P", WithDetectIndent())
	require.NoError(t, err)
	assert.Equal(t, "return 1;\n", p.Methods[0].Body)
}

func TestStaticReturnsCopy(t *testing.T) {
	table := &model.Pattern{
		Name: "T",
		Methods: []model.PatternMethod{
			{Name: "a", Visibility: model.Public, Parameters: []model.Parameter{{Name: "x"}}},
		},
	}
	got, err := Static{Pattern: table}.Reflect()
	require.NoError(t, err)
	got.Methods[0].Parameters[0].Name = "changed"
	assert.Equal(t, "x", table.Methods[0].Parameters[0].Name)
}
