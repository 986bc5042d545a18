package builtins

import (
	"os"

	"github.com/solislang/solis/internal/value"
)

func registerIO(r Registry) {
	r["readFile"] = unary("readFile", func(a value.Value) (value.Value, error) {
		path, err := asString(a, "readFile")
		if err != nil {
			return nil, err
		}
		data, ferr := os.ReadFile(path)
		if ferr != nil {
			return nil, ioFailure(path, ferr)
		}
		return &value.StringValue{Value: string(data)}, nil
	})
	r["writeFile"] = binary("writeFile", func(a, b value.Value) (value.Value, error) {
		path, content, err := asStringPair(a, b, "writeFile")
		if err != nil {
			return nil, err
		}
		if ferr := os.WriteFile(path, []byte(content), 0o644); ferr != nil {
			return nil, ioFailure(path, ferr)
		}
		return &value.BoolValue{Value: true}, nil
	})
	r["appendFile"] = binary("appendFile", func(a, b value.Value) (value.Value, error) {
		path, content, err := asStringPair(a, b, "appendFile")
		if err != nil {
			return nil, err
		}
		f, ferr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if ferr != nil {
			return nil, ioFailure(path, ferr)
		}
		defer f.Close()
		if _, ferr := f.WriteString(content); ferr != nil {
			return nil, ioFailure(path, ferr)
		}
		return &value.BoolValue{Value: true}, nil
	})
	r["fileExists"] = unary("fileExists", func(a value.Value) (value.Value, error) {
		path, err := asString(a, "fileExists")
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(path)
		return &value.BoolValue{Value: statErr == nil}, nil
	})
	r["deleteFile"] = unary("deleteFile", func(a value.Value) (value.Value, error) {
		path, err := asString(a, "deleteFile")
		if err != nil {
			return nil, err
		}
		if ferr := os.Remove(path); ferr != nil {
			return nil, ioFailure(path, ferr)
		}
		return &value.BoolValue{Value: true}, nil
	})
}
