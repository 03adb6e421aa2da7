package sheet

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundnav"
)

// DefaultJSONPath selects every element of a top level array.
const DefaultJSONPath = "$[*]"

// ReadJSON reads the row objects selected by 'path' in a JSON document.
func ReadJSON(data []byte, path string) ([]fundnav.Row, error) {
	if path == "" {
		path = DefaultJSONPath
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON ledger: %w", err)
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// a path selecting a single array returns it wrapped or not.
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q does not select a list of rows", path)
	}
	if len(list) == 1 {
		if inner, ok := list[0].([]any); ok {
			list = inner
		}
	}

	rows := make([]fundnav.Row, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d selected by %q is not an object", i, path)
		}
		for _, col := range fundnav.Columns {
			if _, ok := obj[col]; !ok {
				return nil, fmt.Errorf("row %d: %w %q", i, ErrMissingColumn, col)
			}
		}
		rows = append(rows, fundnav.Row(obj))
	}
	return rows, nil
}
