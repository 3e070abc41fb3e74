package ynab

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/helpcomp/ynab-category-exporter/httperror"
	"github.com/rs/zerolog/log"
)

// HandleCategories serves the cleaned category tree as JSON. A group query
// parameter narrows the response to a single group by name.
func (c *Client) HandleCategories(w http.ResponseWriter, req *http.Request) {
	log.Debug().Msgf("%s %s", req.Method, req.RequestURI)
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotImplemented)
		fmt.Fprintf(w, "Unsupported method %s", req.Method)
		return
	}

	groups := c.CategoryGroups()

	groupNames, ok := req.URL.Query()["group"]
	if ok && len(groupNames) > 0 {
		var filtered []CategoryGroup
		for _, name := range groupNames {
			for _, g := range groups {
				if g.Name != name {
					continue
				}
				filtered = append(filtered, g)
			}
		}
		if len(filtered) == 0 {
			httperror.Send(w, req, http.StatusNotFound, fmt.Sprintf("No category group named %s", groupNames[0]))
			return
		}
		groups = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}

// HandleCategoryIDs serves the category name to id index as JSON.
func (c *Client) HandleCategoryIDs(w http.ResponseWriter, req *http.Request) {
	log.Debug().Msgf("%s %s", req.Method, req.RequestURI)
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotImplemented)
		fmt.Fprintf(w, "Unsupported method %s", req.Method)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c.CategoryIDs())
}
