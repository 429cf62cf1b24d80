// Package handlers exposes the ledger's operations as a local JSON API for
// the UI collaborators. Handlers stay thin: decode, call the core, map the
// classified error.
package handlers

import (
	"net/http"
	"strconv"
)

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
