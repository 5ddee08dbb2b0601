// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Value holds a raw value from the input file. After decoding, V is one of:
//  nil, float64, string, []interface{}, map[string]interface{} or, after
//  PostProcess, *FcnRef for objects like {"fcn": "myfunction"}
type Value struct {
	V interface{}
}

// FcnRef references a function in the functions database
type FcnRef struct {
	Name string // name of function
	F    dbf.T  // derived: the function
}

// UnmarshalJSON decodes any JSON value
func (o *Value) UnmarshalJSON(b []byte) (err error) {
	return json.Unmarshal(b, &o.V)
}

// MarshalJSON encodes the raw value; function references are written back as {"fcn": name}
func (o Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawValue(o.V))
}

// UnmarshalYAML decodes any YAML value. Integers are converted to float64 as in JSON
func (o *Value) UnmarshalYAML(node *yaml.Node) (err error) {
	var v interface{}
	err = node.Decode(&v)
	if err != nil {
		return
	}
	o.V = normalizeYaml(v)
	return
}

// String returns a compact representation
func (o *Value) String() string {
	if o == nil {
		return "<nil>"
	}
	if f, ok := o.V.(*FcnRef); ok {
		return io.Sf("fcn(%s)", f.Name)
	}
	return io.Sf("%v", o.V)
}

// PostProcess connects function references
func (o *Value) PostProcess(funcs FuncsData) (err error) {
	if o == nil {
		return
	}
	o.V, err = connectFcns(o.V, funcs)
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// connectFcns replaces {"fcn": name} objects by *FcnRef, recursively
func connectFcns(v interface{}, funcs FuncsData) (res interface{}, err error) {
	switch val := v.(type) {
	case map[string]interface{}:
		name, ok := val["fcn"].(string)
		if ok && len(val) == 1 {
			ref := &FcnRef{Name: name}
			ref.F, err = funcs.Get(name)
			if err != nil {
				return nil, &ConfigurationError{io.Sf("cannot find function %q referenced by value:\n%v", name, err)}
			}
			return ref, nil
		}
		for key, item := range val {
			val[key], err = connectFcns(item, funcs)
			if err != nil {
				return
			}
		}
	case []interface{}:
		for i, item := range val {
			val[i], err = connectFcns(item, funcs)
			if err != nil {
				return
			}
		}
	}
	return v, nil
}

// rawValue converts *FcnRef back to {"fcn": name}
func rawValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *FcnRef:
		return map[string]interface{}{"fcn": val.Name}
	case []interface{}:
		res := make([]interface{}, len(val))
		for i, item := range val {
			res[i] = rawValue(item)
		}
		return res
	}
	return v
}

// normalizeYaml converts integers to float64 and map[interface{}]interface{} to map[string]interface{}
func normalizeYaml(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeYaml(item)
		}
		return val
	case map[string]interface{}:
		for key, item := range val {
			val[key] = normalizeYaml(item)
		}
		return val
	case map[interface{}]interface{}:
		res := make(map[string]interface{}, len(val))
		for key, item := range val {
			res[io.Sf("%v", key)] = normalizeYaml(item)
		}
		return res
	}
	return v
}
