// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// GetSolidFlags parses the extra flags of a material
//  "!pstress" or "!pstress:true" -- plane-stress in 2D
func GetSolidFlags(ndim int, extra string) (pstress bool) {
	if s, found := io.Keycode(extra, "pstress"); found {
		pstress = s == "" || io.Atob(s)
	}
	if ndim != 2 {
		pstress = false
	}
	return
}
