package manifest

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

const (
	goDefinitionFuncName = "Definitions"

	// ImportPath is how interpreted Go manifests import this package.
	ImportPath = "github.com/kingrea/autoloader/manifest"
)

var definitionType = reflect.TypeOf(Definition{})

// Symbols exposes the manifest types to interpreted Go manifests.
var Symbols = interp.Exports{
	ImportPath + "/manifest": {
		"Definition":  reflect.ValueOf((*Definition)(nil)),
		"KindPackage": reflect.ValueOf(KindPackage),
		"KindInclude": reflect.ValueOf(KindInclude),
	},
}

// EvalGoFile interprets a Go manifest and collects what its Definitions()
// function returns. The function has the signature
//
//	func Definitions() ([]manifest.Definition, error)
//
// and the error result is optional.
func EvalGoFile(path string) ([]Definition, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("manifest: load stdlib symbols: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("manifest: load manifest symbols: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("manifest: interpret %s: %w", path, err)
	}
	fnValue, err := i.Eval(goDefinitionFuncName)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s must define %s() ([]manifest.Definition, error): %w", path, goDefinitionFuncName, err)
	}
	raw, err := callDefinitions(fnValue)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	defs := make([]Definition, 0, len(raw))
	for idx, def := range raw {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("manifest: %s definition[%d]: %w", path, idx, err)
		}
		defs = append(defs, def.Normalized())
	}
	return defs, nil
}

func callDefinitions(fn reflect.Value) ([]Definition, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", goDefinitionFuncName)
	}
	if fn.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%s must not take arguments", goDefinitionFuncName)
	}
	results := fn.Call(nil)
	switch len(results) {
	case 1:
	case 2:
		if errVal := results[1]; errVal.IsValid() && !errVal.IsNil() {
			if err, ok := errVal.Interface().(error); ok {
				return nil, err
			}
			return nil, fmt.Errorf("%s returned a non-error second value", goDefinitionFuncName)
		}
	default:
		return nil, fmt.Errorf("%s must return []manifest.Definition and an optional error", goDefinitionFuncName)
	}
	return toDefinitions(results[0])
}

// toDefinitions accepts the slice as the interpreter hands it back, which
// may wrap each element rather than return a []Definition directly.
func toDefinitions(value reflect.Value) ([]Definition, error) {
	if defs, ok := value.Interface().([]Definition); ok {
		return defs, nil
	}
	if value.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%s must return []manifest.Definition, got %s", goDefinitionFuncName, value.Type())
	}
	defs := make([]Definition, value.Len())
	for i := range defs {
		elem := value.Index(i)
		for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				return nil, fmt.Errorf("%s[%d] is nil", goDefinitionFuncName, i)
			}
			elem = elem.Elem()
		}
		if !elem.Type().ConvertibleTo(definitionType) {
			return nil, fmt.Errorf("%s[%d] is %s, not manifest.Definition", goDefinitionFuncName, i, elem.Type())
		}
		defs[i] = elem.Convert(definitionType).Interface().(Definition)
	}
	return defs, nil
}
