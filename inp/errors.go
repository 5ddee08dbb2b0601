// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/io"

// ConfigurationError indicates invalid or inconsistent case settings
type ConfigurationError struct {
	Msg string
}

// Error returns the message
func (o *ConfigurationError) Error() string {
	return "configuration error: " + o.Msg
}

// cfgErr returns a new ConfigurationError
func cfgErr(msg string, prm ...interface{}) error {
	return &ConfigurationError{io.Sf(msg, prm...)}
}
