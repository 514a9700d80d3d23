// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/cpmech/gocdo/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
)

func verbose() {
	chk.Verbose = true
	inp.Log.SetLevel(logrus.DebugLevel)
}
