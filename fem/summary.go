// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary records summary of outputs
type Summary struct {
	Nproc    int       // number of processors used in last run
	OutSteps []int     // [nOut] output steps
	OutTimes []float64 // [nOut] output times
	OutVels  []float64 // [nOut] norm of velocity dofs; 0 if not available

	// snapshots of saved solutions; not encoded
	snapshots []fe.Field
}

// Add records an output
//  Note: v may be nil; e.g. in steady analyses
func (o *Summary) Add(step int, t float64, u, v fe.Field) {
	o.OutSteps = append(o.OutSteps, step)
	o.OutTimes = append(o.OutTimes, t)
	vel := 0.0
	if v != nil {
		vel = v.Vector().Norm()
	}
	o.OutVels = append(o.OutVels, vel)
	if u != nil {
		o.snapshots = append(o.snapshots, u.Copy())
	}
}

// Snapshots returns the saved solutions
func (o *Summary) Snapshots() []fe.Field { return o.snapshots }

// Save saves summary to disc; only the root processor writes
func (o *Summary) Save(dirout, fnkey, enctype string, nproc, proc int, verbose bool) (err error) {
	if proc != 0 {
		return
	}
	o.Nproc = nproc
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	fn := sumPath(dirout, fnkey, enctype)
	err = os.WriteFile(fn, buf.Bytes(), 0644)
	if err != nil {
		return chk.Err("cannot save summary:\n%v", err)
	}
	inp.Log(inp.LogInfo, "summary written to %q", fn)
	if verbose {
		io.Pfblue2("file <%s> written\n", fn)
	}
	return
}

// Read reads summary back
func (o *Summary) Read(dirout, fnkey, enctype string) (err error) {
	fn := sumPath(dirout, fnkey, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return chk.Err("cannot open summary:\n%v", err)
	}
	defer fil.Close()
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func sumPath(dirout, fnkey, enctype string) string {
	return filepath.Join(dirout, io.Sf("%s_sum.%s", fnkey, enctype))
}
