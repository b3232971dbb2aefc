package pattern

import (
	"os"
	"path"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/modfile"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

const modelPkg = "github.com/cmmoran/wsdlphpgen/pkg/model"

// Export renders p as Go source declaring it as a static table:
//
//	var <varName> = &model.Pattern{...}
//
// The result can be served with Static. pkgPath may be empty when the
// destination package is not inside a module. Every method must carry a
// valid visibility.
func Export(p *model.Pattern, pkgPath, pkgName, varName string) (*jen.File, error) {
	for _, m := range p.Methods {
		if _, err := visibilityCode(m.Visibility); err != nil {
			return nil, errors.WrapReflection(err, p.Name+"::"+m.Name)
		}
	}

	var f *jen.File
	if pkgPath != "" {
		f = jen.NewFilePathName(pkgPath, pkgName)
	} else {
		f = jen.NewFile(pkgName)
	}
	f.HeaderComment("Code generated by wsdlphpgen pattern export. DO NOT EDIT.")

	f.Commentf("%s is the %s pattern as a static method table.", varName, p.Name)
	f.Var().Id(varName).Op("=").Op("&").Qual(modelPkg, "Pattern").Values(jen.Dict{
		jen.Id("Name"): jen.Lit(p.Name),
		jen.Id("Uses"): jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, u := range p.Uses {
				g.Lit(u)
			}
		}),
		jen.Id("Methods"): jen.Index().Qual(modelPkg, "PatternMethod").ValuesFunc(func(g *jen.Group) {
			for _, m := range p.Methods {
				g.Values(methodDict(m))
			}
		}),
	})
	return f, nil
}

func methodDict(m model.PatternMethod) jen.Dict {
	visibility, _ := visibilityCode(m.Visibility)
	d := jen.Dict{
		jen.Id("Name"):       jen.Lit(m.Name),
		jen.Id("Visibility"): visibility,
		jen.Id("Body"):       jen.Lit(m.Body),
	}
	if m.Static {
		d[jen.Id("Static")] = jen.True()
	}
	if m.ReturnType != "" {
		d[jen.Id("ReturnType")] = jen.Lit(m.ReturnType)
	}
	if m.ReturnNullable {
		d[jen.Id("ReturnNullable")] = jen.True()
	}
	if m.DocComment != "" {
		d[jen.Id("DocComment")] = jen.Lit(m.DocComment)
	}
	if len(m.Parameters) > 0 {
		d[jen.Id("Parameters")] = jen.Index().Qual(modelPkg, "Parameter").ValuesFunc(func(g *jen.Group) {
			for _, p := range m.Parameters {
				g.Values(parameterDict(p))
			}
		})
	}
	return d
}

func parameterDict(p model.Parameter) jen.Dict {
	d := jen.Dict{jen.Id("Name"): jen.Lit(p.Name)}
	if p.Type != "" {
		d[jen.Id("Type")] = jen.Lit(p.Type)
	}
	if p.Nullable {
		d[jen.Id("Nullable")] = jen.True()
	}
	if p.HasDefault {
		d[jen.Id("HasDefault")] = jen.True()
		d[jen.Id("Default")] = jen.Lit(p.Default)
	}
	return d
}

func visibilityCode(v model.Visibility) (jen.Code, error) {
	switch v {
	case model.Public:
		return jen.Qual(modelPkg, "Public"), nil
	case model.Protected:
		return jen.Qual(modelPkg, "Protected"), nil
	case model.Private:
		return jen.Qual(modelPkg, "Private"), nil
	}
	return nil, errors.Reflection("invalid visibility %d", int(v))
}

// PackagePath resolves the import path of the package in dir from the
// nearest enclosing go.mod.
func PackagePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.InvalidConfig(err, "resolving "+dir)
	}
	for cur := abs; ; cur = filepath.Dir(cur) {
		data, err := os.ReadFile(filepath.Join(cur, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", errors.InvalidConfig(errors.Newf("no module directive in %s", cur), "reading go.mod")
			}
			rel, err := filepath.Rel(cur, abs)
			if err != nil {
				return "", errors.InvalidConfig(err, "resolving "+dir)
			}
			if rel == "." {
				return modPath, nil
			}
			return path.Join(modPath, filepath.ToSlash(rel)), nil
		}
		if filepath.Dir(cur) == cur {
			return "", errors.InvalidConfig(errors.Newf("no go.mod above %s", abs), "resolving package path")
		}
	}
}
