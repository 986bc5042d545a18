package builtins

import (
	"strings"

	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/value"
)

func registerString(r Registry) {
	r["words"] = unary("words", func(a value.Value) (value.Value, error) {
		s, err := asString(a, "words")
		if err != nil {
			return nil, err
		}
		return stringList(strings.Fields(s)), nil
	})
	r["unwords"] = unary("unwords", func(a value.Value) (value.Value, error) {
		items, err := asStringList(a, "unwords")
		if err != nil {
			return nil, err
		}
		return &value.StringValue{Value: strings.Join(items, " ")}, nil
	})
	r["lines"] = unary("lines", func(a value.Value) (value.Value, error) {
		s, err := asString(a, "lines")
		if err != nil {
			return nil, err
		}
		return stringList(strings.Split(s, "\n")), nil
	})
	r["unlines"] = unary("unlines", func(a value.Value) (value.Value, error) {
		items, err := asStringList(a, "unlines")
		if err != nil {
			return nil, err
		}
		return &value.StringValue{Value: strings.Join(items, "\n")}, nil
	})
	r["trim"] = unary("trim", func(a value.Value) (value.Value, error) {
		s, err := asString(a, "trim")
		if err != nil {
			return nil, err
		}
		return &value.StringValue{Value: strings.TrimSpace(s)}, nil
	})
	r["startsWith"] = binary("startsWith", func(a, b value.Value) (value.Value, error) {
		s, prefix, err := asStringPair(a, b, "startsWith")
		if err != nil {
			return nil, err
		}
		return &value.BoolValue{Value: strings.HasPrefix(s, prefix)}, nil
	})
	r["endsWith"] = binary("endsWith", func(a, b value.Value) (value.Value, error) {
		s, suffix, err := asStringPair(a, b, "endsWith")
		if err != nil {
			return nil, err
		}
		return &value.BoolValue{Value: strings.HasSuffix(s, suffix)}, nil
	})
	r["contains"] = binary("contains", func(a, b value.Value) (value.Value, error) {
		s, sub, err := asStringPair(a, b, "contains")
		if err != nil {
			return nil, err
		}
		return &value.BoolValue{Value: strings.Contains(s, sub)}, nil
	})
	r["split"] = binary("split", func(a, b value.Value) (value.Value, error) {
		s, sep, err := asStringPair(a, b, "split")
		if err != nil {
			return nil, err
		}
		return stringList(strings.Split(s, sep)), nil
	})
}

func asString(v value.Value, who string) (string, error) {
	s, ok := v.(*value.StringValue)
	if !ok {
		return "", cerrors.New(cerrors.UnsupportedPattern, who+" expects a String argument")
	}
	return s.Value, nil
}

func asStringPair(a, b value.Value, who string) (string, string, error) {
	sa, err := asString(a, who)
	if err != nil {
		return "", "", err
	}
	sb, err := asString(b, who)
	if err != nil {
		return "", "", err
	}
	return sa, sb, nil
}

func asStringList(v value.Value, who string) ([]string, error) {
	list, ok := v.(*value.ListValue)
	if !ok {
		return nil, cerrors.New(cerrors.UnsupportedPattern, who+" expects a List String argument")
	}
	out := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		forced, err := value.Force(e)
		if err != nil {
			return nil, err
		}
		s, err := asString(forced, who)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func stringList(items []string) *value.ListValue {
	elems := make([]value.Value, len(items))
	for i, s := range items {
		elems[i] = &value.StringValue{Value: s}
	}
	return &value.ListValue{Elements: elems}
}
