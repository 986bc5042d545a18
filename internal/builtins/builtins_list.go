package builtins

import (
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/value"
)

func registerList(r Registry) {
	r["head"] = unary("head", func(a value.Value) (value.Value, error) {
		list, ok := a.(*value.ListValue)
		if !ok || len(list.Elements) == 0 {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "head of empty or non-List value")
		}
		return value.Force(list.Elements[0])
	})
	r["tail"] = unary("tail", func(a value.Value) (value.Value, error) {
		list, ok := a.(*value.ListValue)
		if !ok || len(list.Elements) == 0 {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "tail of empty or non-List value")
		}
		return &value.ListValue{Elements: list.Elements[1:]}, nil
	})
	r["length"] = unary("length", func(a value.Value) (value.Value, error) {
		list, ok := a.(*value.ListValue)
		if !ok {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "length of non-List value")
		}
		return &value.IntValue{Value: int64(len(list.Elements))}, nil
	})
}
