// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PathVar returns the route variable called name from a request matched by
// a mux.Router, or an empty string when the route has no such variable.
func PathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
