// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// MatValue holds a material parameter given either as a number or as a
// mapping subdomain id => number; e.g. 2e11 or {"1": 2e11, "2": 7e10}
type MatValue struct {
	V         float64         // uniform value
	PerDomain map[int]float64 // values per subdomain; nil => uniform
}

// UnmarshalJSON decodes a number or an object
func (o *MatValue) UnmarshalJSON(b []byte) (err error) {
	if err = json.Unmarshal(b, &o.V); err == nil {
		return
	}
	var m map[string]float64
	err = json.Unmarshal(b, &m)
	if err != nil {
		return chk.Err("material parameter must be a number or a mapping subdomain => number; %s is invalid", string(b))
	}
	return o.setDomains(m)
}

// UnmarshalYAML decodes a number or a mapping
func (o *MatValue) UnmarshalYAML(node *yaml.Node) (err error) {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&o.V)
	}
	var m map[string]float64
	err = node.Decode(&m)
	if err != nil {
		return chk.Err("material parameter must be a number or a mapping subdomain => number (line %d)", node.Line)
	}
	return o.setDomains(m)
}

// MarshalJSON encodes the number or the mapping
func (o MatValue) MarshalJSON() ([]byte, error) {
	if o.PerDomain == nil {
		return json.Marshal(o.V)
	}
	m := make(map[string]float64)
	for id, v := range o.PerDomain {
		m[strconv.Itoa(id)] = v
	}
	return json.Marshal(m)
}

// Get returns the value for a subdomain
func (o *MatValue) Get(subdomain int) (v float64, err error) {
	if o.PerDomain == nil {
		return o.V, nil
	}
	v, ok := o.PerDomain[subdomain]
	if !ok {
		return 0, chk.Err("material parameter is not defined for subdomain %d", subdomain)
	}
	return
}

func (o *MatValue) setDomains(m map[string]float64) (err error) {
	o.PerDomain = make(map[int]float64)
	for key, v := range m {
		id, e := strconv.Atoi(key)
		if e != nil {
			return chk.Err("subdomain id %q must be an integer", key)
		}
		o.PerDomain[id] = v
	}
	return
}

// MaterialData holds the material properties of a linear elastic solid
type MaterialData struct {
	Name  string    `json:"name"                          yaml:"name"`                          // name of material
	Model string    `json:"model"                         yaml:"model"`                         // name of model; default = "lin-elast"
	E     *MatValue `json:"elastic_modulus"               yaml:"elastic_modulus"`               // Young's modulus
	Nu    *MatValue `json:"poisson_ratio"                 yaml:"poisson_ratio"`                 // Poisson's coefficient
	Rho   *MatValue `json:"density"                       yaml:"density"`                       // density
	Alpha *MatValue `json:"thermal_expansion_coefficient" yaml:"thermal_expansion_coefficient"` // thermal expansion coefficient
	Extra string    `json:"extra"                         yaml:"extra"`                         // extra flags; e.g. "!pstress"
}

// SetDefault sets default values
func (o *MaterialData) SetDefault() {
	o.Model = "lin-elast"
}

// names of parameters, in order
var matPrmNames = []string{"E", "nu", "rho", "alpha"}

func (o *MaterialData) all() []*MatValue {
	return []*MatValue{o.E, o.Nu, o.Rho, o.Alpha}
}

// Piecewise tells whether some parameter varies per subdomain
func (o *MaterialData) Piecewise() bool {
	for _, v := range o.all() {
		if v != nil && v.PerDomain != nil {
			return true
		}
	}
	return false
}

// Subdomains returns the sorted ids of subdomains used by per-subdomain parameters
func (o *MaterialData) Subdomains() (ids []int) {
	seen := make(map[int]bool)
	for _, v := range o.all() {
		if v == nil {
			continue
		}
		for id := range v.PerDomain {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return
}

// Params returns the parameters for a subdomain. Missing parameters are not included
func (o *MaterialData) Params(subdomain int) (prms dbf.Params, err error) {
	for i, v := range o.all() {
		if v == nil {
			continue
		}
		var val float64
		val, err = v.Get(subdomain)
		if err != nil {
			return nil, chk.Err("material %q: parameter %q: %v", o.Name, matPrmNames[i], err)
		}
		prms = append(prms, &dbf.P{N: matPrmNames[i], V: val})
	}
	return
}

// String returns a summary
func (o *MaterialData) String() string {
	return io.Sf("material %q (%s): E=%v nu=%v rho=%v alpha=%v", o.Name, o.Model, o.E, o.Nu, o.Rho, o.Alpha)
}

// String returns the number or the mapping
func (o *MatValue) String() string {
	if o == nil {
		return "<nil>"
	}
	if o.PerDomain == nil {
		return io.Sf("%g", o.V)
	}
	return io.Sf("%v", o.PerDomain)
}
