// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// NoBoundaryId indicates that a record did not define "boundary_id"
const NoBoundaryId = -1

// BcData holds boundary condition data
type BcData struct {
	Name       string    `json:"name"        yaml:"name"`        // name of condition; the key in the ordered mapping
	BoundaryId int       `json:"boundary_id" yaml:"boundary_id"` // id of marked boundary facets
	Type       string    `json:"type"        yaml:"type"`        // "displacement", "Dirichlet", "force", "pressure" or "stress"
	Value      *Value    `json:"value"       yaml:"value"`       // value of condition; nil => free
	Direction  []float64 `json:"direction"   yaml:"direction"`   // direction of force/pressure; nil => outward normal
	Variable   string    `json:"variable"    yaml:"variable"`    // mixed spaces: "displacement", "velocity" or "all"
	Values     []*BcData `json:"values"      yaml:"values"`      // alternative {variable, value} records
}

// bcAlias avoids recursion in Unmarshal
type bcAlias BcData

// UnmarshalJSON decodes a record setting BoundaryId = NoBoundaryId when missing
func (o *BcData) UnmarshalJSON(b []byte) (err error) {
	a := bcAlias{BoundaryId: NoBoundaryId}
	err = json.Unmarshal(b, &a)
	if err != nil {
		return
	}
	*o = BcData(a)
	return
}

// UnmarshalYAML decodes a record setting BoundaryId = NoBoundaryId when missing
func (o *BcData) UnmarshalYAML(node *yaml.Node) (err error) {
	a := bcAlias{BoundaryId: NoBoundaryId}
	err = node.Decode(&a)
	if err != nil {
		return
	}
	*o = BcData(a)
	return
}

// ForVariable returns the record that applies to the variable of the solver.
// A record in Values whose Variable matches wins; otherwise the record itself is returned
func (o *BcData) ForVariable(variable string) *BcData {
	for _, sub := range o.Values {
		if sub.Variable == variable {
			res := *o
			res.Value = sub.Value
			res.Variable = sub.Variable
			if sub.Direction != nil {
				res.Direction = sub.Direction
			}
			res.Values = nil
			return &res
		}
	}
	return o
}

// PostProcess connects function references
func (o *BcData) PostProcess(funcs FuncsData) (err error) {
	err = o.Value.PostProcess(funcs)
	if err != nil {
		return
	}
	for _, sub := range o.Values {
		err = sub.Value.PostProcess(funcs)
		if err != nil {
			return
		}
	}
	return
}

// String returns a one-line description
func (o *BcData) String() string {
	return io.Sf("%q: {boundary_id:%d, type:%q, value:%v}", o.Name, o.BoundaryId, o.Type, o.Value)
}

// BcsData holds boundary conditions in the order they appear in the input file
type BcsData []*BcData

// UnmarshalJSON decodes an object (name => record), keeping the order of keys, or an array of records
func (o *BcsData) UnmarshalJSON(b []byte) (err error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return
	}
	switch tok {
	case json.Delim('['):
		var list []*BcData
		err = json.Unmarshal(b, &list)
		if err != nil {
			return
		}
		*o = list
		return
	case json.Delim('{'):
	default:
		return chk.Err("boundary conditions must be an object or an array; %v is invalid", tok)
	}
	var list []*BcData
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return
		}
		name, ok := tok.(string)
		if !ok {
			return chk.Err("invalid key %v in boundary conditions", tok)
		}
		bc := new(BcData)
		err = dec.Decode(bc)
		if err != nil {
			return chk.Err("cannot decode boundary condition %q:\n%v", name, err)
		}
		bc.Name = name
		list = append(list, bc)
	}
	*o = list
	return
}

// UnmarshalYAML decodes a mapping (name => record), keeping the order of keys, or a sequence of records
func (o *BcsData) UnmarshalYAML(node *yaml.Node) (err error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []*BcData
		err = node.Decode(&list)
		if err != nil {
			return
		}
		*o = list
		return
	case yaml.MappingNode:
	default:
		return chk.Err("boundary conditions must be a mapping or a sequence (line %d)", node.Line)
	}
	var list []*BcData
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		bc := new(BcData)
		err = node.Content[i+1].Decode(bc)
		if err != nil {
			return chk.Err("cannot decode boundary condition %q:\n%v", name, err)
		}
		bc.Name = name
		list = append(list, bc)
	}
	*o = list
	return
}

// Ids returns the boundary ids in order
func (o BcsData) Ids() (ids []int) {
	ids = make([]int, len(o))
	for i, bc := range o {
		ids[i] = bc.BoundaryId
	}
	return
}

// Names returns the names in order
func (o BcsData) Names() (names []string) {
	names = make([]string, len(o))
	for i, bc := range o {
		names[i] = bc.Name
	}
	return
}

// Get returns the record for a boundary id or nil
func (o BcsData) Get(boundaryId int) *BcData {
	for _, bc := range o {
		if bc.BoundaryId == boundaryId {
			return bc
		}
	}
	return nil
}
