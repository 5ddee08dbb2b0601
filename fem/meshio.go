// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"strings"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// datasets in HDF5 mesh files
const (
	Hdf5Mesh       = "/mesh"
	Hdf5Subdomains = "/subdomains"
	Hdf5Boundaries = "/boundaries"
)

// ReadMesh reads a mesh selecting the reader method by the extension of path
//  .xdmf        -- ReadXdmf
//  .xml         -- ReadXml with companion <root>_facet_region.xml and <root>_physical_region.xml, if present
//  .h5 or .hdf5 -- ReadHdf5 with datasets /mesh, /subdomains and /boundaries
func ReadMesh(r fe.MeshReader, path string) (m fe.Mesh, err error) {
	if r == nil {
		return nil, chk.Err("kernel does not provide a mesh reader")
	}
	if !fileExists(path) {
		return nil, cfgErr("cannot find mesh file %q", path)
	}
	ext := strings.ToLower(io.FnExt(path))
	switch ext {
	case ".xdmf":
		m, err = r.ReadXdmf(path)
	case ".xml":
		root := strings.TrimSuffix(path, io.FnExt(path))
		m, err = r.ReadXml(path, companion(root+"_facet_region.xml"), companion(root+"_physical_region.xml"))
	case ".h5", ".hdf5":
		m, err = r.ReadHdf5(path, Hdf5Mesh, Hdf5Subdomains, Hdf5Boundaries)
	default:
		return nil, cfgErr("mesh file extension %q is invalid; options are .xml, .xdmf, .h5 and .hdf5", ext)
	}
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", path, err)
	}
	return
}

// companion returns path if the file exists; otherwise ""
func companion(path string) string {
	if fileExists(path) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
