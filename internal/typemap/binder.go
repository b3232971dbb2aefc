package typemap

import (
	"strings"

	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// ErasedArray is the native storage type used for array properties.
const ErasedArray = "array"

// Bind decides how el is declared. With nativeTypes off (legacy profile) the
// type only ever lands in the @var annotation. With nativeTypes on, arrays fall
// back to an erased array declaration plus the annotation, and everything else
// gets a concrete native type qualified by namespace.
func Bind(el model.SchemaElement, namespace string, nativeTypes bool) model.PropertyBinding {
	nt := Normalize(el)

	if !nativeTypes {
		return model.PropertyBinding{DocType: nt.Expression()}
	}

	if nt.IsArray {
		storage := ErasedArray
		if nt.IsNullable {
			storage = "?" + storage
		}
		return model.PropertyBinding{
			StorageType: storage,
			DocType:     nt.Expression(),
		}
	}

	native := Qualify(nt.Base, namespace)
	if nt.IsNullable {
		native = "?" + native
	}
	return model.PropertyBinding{NativeType: native}
}

// Qualify prefixes name with namespace unless it is global or already qualified.
func Qualify(name, namespace string) string {
	if IsGlobal(name) || namespace == "" {
		return name
	}
	if strings.HasPrefix(name, `\`) {
		return strings.TrimPrefix(name, `\`)
	}
	return strings.Trim(namespace, `\`) + `\` + name
}
